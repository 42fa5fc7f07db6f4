package controllers

import (
	"context"
	"net/http"
	"time"

	"campus-services-backend/logger"
	"campus-services-backend/models"
	"campus-services-backend/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// countsByField runs a $group count aggregation and flattens the result to
// {value: count}.
func countsByField(ctx context.Context, collection *mongo.Collection, field string) (map[string]int64, error) {
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$" + field},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
	cursor, err := collection.Aggregate(ctx, mongo.Pipeline{groupStage})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// completedRevenue sums a field over completed documents matching the
// filter.
func completedRevenue(ctx context.Context, collection *mongo.Collection, totalField string, filter bson.M) (float64, error) {
	match := bson.M{"status": "completed"}
	for k, v := range filter {
		match[k] = v
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + totalField}}},
		}}},
	}
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// GetDashboard aggregates counts and revenue across orders, xerox orders,
// queues and users.
func GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		today := time.Now().Truncate(24 * time.Hour)

		totalOrders, _ := orderCollection.CountDocuments(ctx, bson.M{})
		todayOrders, _ := orderCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": today}})
		ordersByService, err := countsByField(ctx, orderCollection, "service_type")
		if err != nil {
			logger.Log.Errorw("dashboard aggregation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get dashboard statistics"})
			return
		}
		ordersByStatus, _ := countsByField(ctx, orderCollection, "status")
		orderRevenue, _ := completedRevenue(ctx, orderCollection, "total", bson.M{})

		totalXerox, _ := xeroxCollection.CountDocuments(ctx, bson.M{})
		todayXerox, _ := xeroxCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": today}})
		xeroxByStatus, _ := countsByField(ctx, xeroxCollection, "status")
		xeroxRevenue, _ := completedRevenue(ctx, xeroxCollection, "total_price", bson.M{})

		totalQueues, _ := queueCollection.CountDocuments(ctx, bson.M{})
		activeQueues, _ := queueCollection.CountDocuments(ctx, bson.M{"status": models.QueueActive})
		queuesByService, _ := countsByField(ctx, queueCollection, "service_type")

		totalUsers, _ := userCollection.CountDocuments(ctx, bson.M{})
		students, _ := userCollection.CountDocuments(ctx, bson.M{"role": models.RoleStudent})
		admins, _ := userCollection.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})

		c.JSON(http.StatusOK, gin.H{
			"orders": gin.H{
				"total":         totalOrders,
				"today":         todayOrders,
				"byServiceType": ordersByService,
				"byStatus":      ordersByStatus,
				"totalRevenue":  orderRevenue,
			},
			"xeroxOrders": gin.H{
				"total":        totalXerox,
				"today":        todayXerox,
				"byStatus":     xeroxByStatus,
				"totalRevenue": xeroxRevenue,
			},
			"queues": gin.H{
				"total":         totalQueues,
				"active":        activeQueues,
				"byServiceType": queuesByService,
			},
			"users": gin.H{
				"total":    totalUsers,
				"students": students,
				"admins":   admins,
			},
		})
	}
}

// GetDailyReport returns the orders, xerox orders and completed revenue for
// one day (defaults to today).
func GetDailyReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reportDate := time.Now()
		if dateParam := c.Query("date"); dateParam != "" {
			parsed, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			reportDate = parsed
		}
		dayStart := time.Date(reportDate.Year(), reportDate.Month(), reportDate.Day(), 0, 0, 0, 0, reportDate.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		dayRange := bson.M{"$gte": dayStart, "$lt": dayEnd}

		orderFilter := bson.M{"created_at": dayRange}
		if serviceType := c.Query("serviceType"); serviceType != "" {
			orderFilter["service_type"] = serviceType
		}

		sort := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

		cursor, err := orderCollection.Find(ctx, orderFilter, sort)
		if err != nil {
			logger.Log.Errorw("daily report query failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily report"})
			return
		}
		var dailyOrders []models.Order
		if err := cursor.All(ctx, &dailyOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily report"})
			return
		}

		xeroxCursor, err := xeroxCollection.Find(ctx, bson.M{"created_at": dayRange}, sort)
		if err != nil {
			logger.Log.Errorw("daily xerox report query failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily report"})
			return
		}
		var dailyXerox []models.XeroxOrder
		if err := xeroxCursor.All(ctx, &dailyXerox); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily report"})
			return
		}

		orderRevenue, _ := completedRevenue(ctx, orderCollection, "total", orderFilter)
		xeroxRevenue, _ := completedRevenue(ctx, xeroxCollection, "total_price", bson.M{"created_at": dayRange})

		c.JSON(http.StatusOK, gin.H{
			"date":            dayStart.Format("2006-01-02"),
			"orders":          dailyOrders,
			"xeroxOrders":     dailyXerox,
			"totalRevenue":    orderRevenue + xeroxRevenue,
			"orderCount":      len(dailyOrders),
			"xeroxOrderCount": len(dailyXerox),
		})
	}
}

// GetAllQueues lists every queue including customer lists. Admin only.
func GetAllQueues() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cursor, err := queueCollection.Find(ctx, bson.M{})
		if err != nil {
			logger.Log.Errorw("admin queue listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queues"})
			return
		}
		var queues []models.Queue
		if err := cursor.All(ctx, &queues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queues"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"queues": queues})
	}
}

// CreateQueue opens a new service line. Admin only.
func CreateQueue() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var queue models.Queue
		if err := c.BindJSON(&queue); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&queue); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		queue.ID = primitive.NewObjectID()
		queue.Queue_id = queue.ID.Hex()
		queue.Status = models.QueueActive
		queue.Current_number = 0
		queue.Customers = []models.QueueCustomer{}
		if queue.Max_capacity == 0 {
			queue.Max_capacity = 100
		}
		if queue.Estimated_wait_time == 0 {
			queue.Estimated_wait_time = 15
		}
		queue.Created_at = time.Now()
		queue.Updated_at = queue.Created_at

		if _, err := queueCollection.InsertOne(ctx, queue); err != nil {
			logger.Log.Errorw("queue insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create queue"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "queue created successfully",
			"queue":   queue,
		})
	}
}

// UpdateQueueStatus pauses, resumes or closes a queue. Closed queues cannot
// be reopened. Admin only.
func UpdateQueueStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req struct {
			Status string `json:"status" validate:"required,eq=active|eq=paused|eq=closed"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		queueId := c.Param("queue_id")
		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": queueId}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}
		if !models.CanTransitionQueue(queue.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrInvalidTransition.Error() + ": " + queue.Status + " -> " + req.Status,
			})
			return
		}

		_, err = queueCollection.UpdateOne(
			ctx,
			bson.M{"queue_id": queueId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: req.Status}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("queue status update failed", "queue_id", queueId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update queue status"})
			return
		}

		go ws.Publish(ws.QueueTopic(queueId), "queue-status-updated", gin.H{"queueId": queueId, "status": req.Status})
		c.JSON(http.StatusOK, gin.H{"message": "queue status updated successfully"})
	}
}
