package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"campus-services-backend/database"
	"campus-services-backend/logger"
	"campus-services-backend/models"
	"campus-services-backend/ws"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

type placeOrderRequest struct {
	Items                []models.CartItem `json:"items" validate:"required,min=1,dive"`
	Payment_method       string            `json:"paymentMethod" validate:"required,eq=online|eq=offline"`
	Service_type         string            `json:"serviceType" validate:"required,eq=canteen|eq=xerox"`
	Special_instructions string            `json:"specialInstructions"`
}

// PlaceOrder turns a cart into a priced, persisted order. Validation is
// all-or-nothing: nothing is written until every line passes.
func PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req placeOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		uid := c.GetString("uid")

		lookup := func(itemId string) (*models.MenuItem, error) {
			var menuItem models.MenuItem
			err := menuCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&menuItem)
			if err != nil {
				return nil, err
			}
			return &menuItem, nil
		}

		items, total, err := models.BuildOrderItems(req.Items, req.Service_type, lookup)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order := models.Order{
			ID:                   primitive.NewObjectID(),
			User_id:              uid,
			Items:                items,
			Total:                total,
			Status:               models.OrderPending,
			Service_type:         req.Service_type,
			Payment_method:       req.Payment_method,
			Payment_status:       models.PaymentPending,
			Special_instructions: req.Special_instructions,
			Created_at:           time.Now(),
		}
		order.Order_id = order.ID.Hex()
		order.Updated_at = order.Created_at

		if _, err := orderCollection.InsertOne(ctx, order); err != nil {
			logger.Log.Errorw("order insert failed", "user_id", uid, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": uid},
			bson.M{"$push": bson.M{"orders": order.Order_id}},
		)
		if err != nil {
			logger.Log.Warnw("failed to append order to user history", "user_id", uid, "order_id", order.Order_id, "error", err)
		}

		go ws.Broadcast("new-order", gin.H{"order": order})

		response := gin.H{
			"message": "order placed successfully",
			"order":   order,
		}
		if order.Service_type == models.ServiceCanteen {
			response["qrCodeData"] = order.QRData()
		}
		c.JSON(http.StatusCreated, response)
	}
}

// GetMyOrders lists the caller's orders, optionally filtered by service
// type, newest first.
func GetMyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		filter := bson.M{"user_id": c.GetString("uid")}
		if serviceType := c.Query("serviceType"); serviceType != "" {
			filter["service_type"] = serviceType
		}

		cursor, err := orderCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			logger.Log.Errorw("order listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": c.Param("order_id")}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.User_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// CancelOrder is allowed only while the order is still pending, and only for
// the owner or an admin.
func CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.User_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		if order.Status != models.OrderPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrOrderNotCancelable.Error()})
			return
		}

		_, err = orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId, "status": models.OrderPending},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: models.OrderCancelled}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("order cancel failed", "order_id", orderId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			return
		}

		go ws.Publish(ws.OrderTopic(orderId), "order-updated", gin.H{"orderId": orderId, "status": models.OrderCancelled})
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled successfully"})
	}
}

// UpdateOrderStatus drives the order through its lifecycle. Admin only;
// disallowed transitions are rejected.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req struct {
			Status string `json:"status" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.IsOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !models.CanTransitionOrder(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrInvalidTransition.Error() + ": " + order.Status + " -> " + req.Status,
			})
			return
		}

		_, err = orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: req.Status}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("order status update failed", "order_id", orderId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		go func() {
			ws.Publish(ws.OrderTopic(orderId), "order-updated", gin.H{"orderId": orderId, "status": req.Status})
			if req.Status == models.OrderReady {
				message := "Your canteen order is ready for collection!"
				if order.Service_type == models.ServiceXerox {
					message = "Your xerox order is ready for collection!"
				}
				ws.Publish(ws.OrderTopic(orderId), "order-ready", gin.H{
					"orderId":     orderId,
					"message":     message,
					"serviceType": order.Service_type,
				})
			}
		}()

		c.JSON(http.StatusOK, gin.H{"message": "order status updated successfully"})
	}
}

// GetAllOrders lists every order, filterable by service type and status.
// Admin only.
func GetAllOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		filter := bson.M{}
		if serviceType := c.Query("serviceType"); serviceType != "" {
			filter["service_type"] = serviceType
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := orderCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			logger.Log.Errorw("admin order listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrderQR renders the pickup QR code from the order's immutable fields.
// Canteen orders only, owner or admin.
func GetOrderQR() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": c.Param("order_id")}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.User_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		if order.Service_type != models.ServiceCanteen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "QR code is only available for canteen orders"})
			return
		}

		qrData := order.QRData()
		encoded, err := json.Marshal(qrData)
		if err != nil {
			logger.Log.Errorw("qr payload marshal failed", "order_id", order.Order_id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
			return
		}

		png, err := qrcode.Encode(string(encoded), qrcode.Medium, 300)
		if err != nil {
			logger.Log.Errorw("qr encoding failed", "order_id", order.Order_id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"qrCode":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
			"orderData": qrData,
		})
	}
}
