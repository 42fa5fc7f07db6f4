package controllers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"campus-services-backend/config"
	"campus-services-backend/database"
	"campus-services-backend/logger"
	"campus-services-backend/models"
	"campus-services-backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var xeroxCollection *mongo.Collection = database.OpenCollection(database.Client, "xeroxOrder")

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 10 << 20 // 10MB per file
)

// AllowedUploadType restricts uploads to printable documents: images, PDF,
// DOC and DOCX.
func AllowedUploadType(mimetype string) bool {
	if strings.HasPrefix(mimetype, "image/") {
		return true
	}
	switch mimetype {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	}
	return false
}

// PlaceXeroxOrder accepts a multipart upload (up to 5 files, 10MB each),
// stores the files and persists a priced print job. Total pages is the file
// count: one page per file, document analysis is out of scope.
func PlaceXeroxOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
			return
		}
		if len(files) > maxUploadFiles {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at most 5 files per order"})
			return
		}
		for _, file := range files {
			if file.Size > maxUploadFileSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "file " + file.Filename + " exceeds the 10MB limit"})
				return
			}
			if !AllowedUploadType(file.Header.Get("Content-Type")) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, only images, PDF, DOC and DOCX files are allowed"})
				return
			}
		}

		copies, err := strconv.Atoi(c.PostForm("copies"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "copies must be an integer"})
			return
		}

		order := models.XeroxOrder{
			Copies:               copies,
			Paper_size:           c.DefaultPostForm("paperSize", models.PaperA4),
			Color_mode:           c.DefaultPostForm("colorMode", models.ColorBlack),
			Binding:              c.DefaultPostForm("binding", models.BindingNone),
			Payment_method:       c.PostForm("paymentMethod"),
			Special_instructions: c.PostForm("specialInstructions"),
		}
		if err := validate.Struct(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if order.Payment_method != models.PaymentOnline && order.Payment_method != models.PaymentOffline {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethod must be online or offline"})
			return
		}

		uploadDir := filepath.Join(config.GetString("UPLOAD_DIR", "uploads"), "xerox")
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			logger.Log.Errorw("upload dir creation failed", "dir", uploadDir, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place xerox order"})
			return
		}

		uploaded := make([]models.UploadedFile, 0, len(files))
		for _, file := range files {
			storedName := "xerox-" + uuid.NewString() + filepath.Ext(file.Filename)
			storedPath := filepath.Join(uploadDir, storedName)
			if err := c.SaveUploadedFile(file, storedPath); err != nil {
				logger.Log.Errorw("file save failed", "file", file.Filename, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
				return
			}
			uploaded = append(uploaded, models.UploadedFile{
				Filename:      storedName,
				Original_name: file.Filename,
				Path:          storedPath,
				Size:          file.Size,
				Mimetype:      file.Header.Get("Content-Type"),
			})
		}

		uid := c.GetString("uid")
		unitPrice := models.XeroxUnitPrice(order.Paper_size, order.Color_mode, order.Binding)

		order.ID = primitive.NewObjectID()
		order.Order_id = order.ID.Hex()
		order.User_id = uid
		order.Files = uploaded
		order.Total_pages = len(uploaded)
		order.Total_price = models.XeroxTotalPrice(unitPrice, order.Total_pages, order.Copies)
		order.Payment_status = models.PaymentPending
		order.Status = models.XeroxPending
		order.Created_at = time.Now()
		order.Updated_at = order.Created_at

		if _, err := xeroxCollection.InsertOne(ctx, order); err != nil {
			logger.Log.Errorw("xerox order insert failed", "user_id", uid, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place xerox order"})
			return
		}

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": uid},
			bson.M{"$push": bson.M{"xerox_orders": order.Order_id}},
		)
		if err != nil {
			logger.Log.Warnw("failed to append xerox order to user history", "user_id", uid, "error", err)
		}

		go ws.Broadcast("new-xerox-order", gin.H{"xeroxOrder": order})

		c.JSON(http.StatusCreated, gin.H{
			"message":    "xerox order placed successfully",
			"xeroxOrder": order,
		})
	}
}

func GetMyXeroxOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cursor, err := xeroxCollection.Find(
			ctx,
			bson.M{"user_id": c.GetString("uid")},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
		)
		if err != nil {
			logger.Log.Errorw("xerox order listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get xerox orders"})
			return
		}
		var orders []models.XeroxOrder
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get xerox orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"xeroxOrders": orders})
	}
}

func GetXeroxOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var order models.XeroxOrder
		err := xeroxCollection.FindOne(ctx, bson.M{"order_id": c.Param("order_id")}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "xerox order not found"})
			return
		}
		if order.User_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"xeroxOrder": order})
	}
}

func CancelXeroxOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.XeroxOrder
		err := xeroxCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "xerox order not found"})
			return
		}
		if order.User_id != c.GetString("uid") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		if order.Status != models.XeroxPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrOrderNotCancelable.Error()})
			return
		}

		_, err = xeroxCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId, "status": models.XeroxPending},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: models.XeroxCancelled}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("xerox order cancel failed", "order_id", orderId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel xerox order"})
			return
		}

		go ws.Publish(ws.XeroxTopic(orderId), "xerox-order-updated", gin.H{"orderId": orderId, "status": models.XeroxCancelled})
		c.JSON(http.StatusOK, gin.H{"message": "xerox order cancelled successfully"})
	}
}

// UpdateXeroxOrderStatus drives the print job through its lifecycle. Admin
// only; disallowed transitions are rejected.
func UpdateXeroxOrderStatus() gin.HandlerFunc {
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
		if !models.IsXeroxStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderId := c.Param("order_id")
		var order models.XeroxOrder
		err := xeroxCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "xerox order not found"})
			return
		}
		if !models.CanTransitionXerox(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrInvalidTransition.Error() + ": " + order.Status + " -> " + req.Status,
			})
			return
		}

		_, err = xeroxCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: req.Status}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("xerox status update failed", "order_id", orderId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update xerox order status"})
			return
		}

		go func() {
			ws.Publish(ws.XeroxTopic(orderId), "xerox-order-updated", gin.H{"orderId": orderId, "status": req.Status})
			if req.Status == models.XeroxReady {
				ws.Publish(ws.XeroxTopic(orderId), "xerox-order-ready", gin.H{
					"orderId": orderId,
					"message": "Your xerox order is ready for collection!",
				})
			}
		}()

		c.JSON(http.StatusOK, gin.H{"message": "xerox order status updated successfully"})
	}
}

// GetAllXeroxOrders lists every print job, filterable by status. Admin only.
func GetAllXeroxOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := xeroxCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			logger.Log.Errorw("admin xerox listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get xerox orders"})
			return
		}
		var orders []models.XeroxOrder
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get xerox orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"xeroxOrders": orders})
	}
}
