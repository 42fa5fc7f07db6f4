package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"campus-services-backend/database"
	"campus-services-backend/logger"
	"campus-services-backend/models"
	"campus-services-backend/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var queueCollection *mongo.Collection = database.OpenCollection(database.Client, "queue")

// saveQueue writes back the fields the queue engine mutates.
func saveQueue(ctx context.Context, queue *models.Queue) error {
	_, err := queueCollection.UpdateOne(
		ctx,
		bson.M{"queue_id": queue.Queue_id},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "customers", Value: queue.Customers},
			{Key: "current_number", Value: queue.Current_number},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	return err
}

func queueSummary(queue *models.Queue) gin.H {
	return gin.H{
		"id":                queue.Queue_id,
		"name":              queue.Name,
		"serviceType":       queue.Service_type,
		"currentNumber":     queue.Current_number,
		"customerCount":     queue.QueueLength(),
		"status":            queue.Status,
		"estimatedWaitTime": queue.CurrentWaitTime(),
	}
}

// GetQueues lists all queues that are not closed, without their customer
// lists.
func GetQueues() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cursor, err := queueCollection.Find(ctx, bson.M{"status": bson.M{"$ne": models.QueueClosed}})
		if err != nil {
			logger.Log.Errorw("queue listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queues"})
			return
		}
		var queues []models.Queue
		if err := cursor.All(ctx, &queues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queues"})
			return
		}

		queueList := make([]gin.H, 0, len(queues))
		for i := range queues {
			queueList = append(queueList, queueSummary(&queues[i]))
		}
		c.JSON(http.StatusOK, gin.H{"queues": queueList})
	}
}

func GetQueue() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": c.Param("queue_id")}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"queue": queue})
	}
}

// JoinQueue appends the caller to the waiting list and reports the assigned
// position.
func JoinQueue() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		queueId := c.Param("queue_id")
		uid := c.GetString("uid")

		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": queueId}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		position, err := queue.AddCustomer(uid, *user.Name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := saveQueue(ctx, &queue); err != nil {
			logger.Log.Errorw("queue save failed", "queue_id", queueId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join queue"})
			return
		}

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": uid},
			bson.M{"$push": bson.M{"queue_history": models.QueueHistoryEntry{
				Queue_id:  queueId,
				Joined_at: time.Now(),
				Position:  position,
			}}},
		)
		if err != nil {
			logger.Log.Warnw("failed to record queue history", "user_id", uid, "queue_id", queueId, "error", err)
		}

		go ws.Publish(ws.QueueTopic(queueId), "queue-updated", gin.H{
			"queueId":       queueId,
			"customers":     queue.Customers,
			"currentNumber": queue.Current_number,
		})

		c.JSON(http.StatusOK, gin.H{
			"message":           "successfully joined queue",
			"position":          position,
			"estimatedWaitTime": queue.CurrentWaitTime(),
		})
	}
}

// LeaveQueue removes the caller and compacts the remaining positions.
// Leaving a queue you are not in is not an error.
func LeaveQueue() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		queueId := c.Param("queue_id")
		uid := c.GetString("uid")

		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": queueId}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}

		if removed := queue.RemoveCustomer(uid); removed {
			if err := saveQueue(ctx, &queue); err != nil {
				logger.Log.Errorw("queue save failed", "queue_id", queueId, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave queue"})
				return
			}

			now := time.Now()
			_, err = userCollection.UpdateOne(
				ctx,
				bson.M{"user_id": uid, "queue_history.queue_id": queueId},
				bson.M{"$set": bson.M{"queue_history.$.left_at": now}},
			)
			if err != nil {
				logger.Log.Warnw("failed to close queue history entry", "user_id", uid, "queue_id", queueId, "error", err)
			}

			go ws.Publish(ws.QueueTopic(queueId), "queue-updated", gin.H{
				"queueId":       queueId,
				"customers":     queue.Customers,
				"currentNumber": queue.Current_number,
			})
		}

		c.JSON(http.StatusOK, gin.H{"message": "successfully left queue"})
	}
}

// GetQueuePosition reports the caller's position and status in one queue.
func GetQueuePosition() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": c.Param("queue_id")}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}

		customer := queue.FindCustomer(c.GetString("uid"))
		if customer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotInQueue.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"position":          customer.Position,
			"status":            customer.Status,
			"estimatedWaitTime": queue.CurrentWaitTime(),
		})
	}
}

// GetActiveQueues lists every queue where the caller is currently waiting or
// called.
func GetActiveQueues() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		uid := c.GetString("uid")
		filter := bson.M{
			"customers": bson.M{"$elemMatch": bson.M{
				"user_id": uid,
				"status":  bson.M{"$in": []string{models.CustomerWaiting, models.CustomerCalled}},
			}},
		}
		cursor, err := queueCollection.Find(ctx, filter)
		if err != nil {
			logger.Log.Errorw("active queue lookup failed", "user_id", uid, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get active queues"})
			return
		}
		var queues []models.Queue
		if err := cursor.All(ctx, &queues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get active queues"})
			return
		}

		activeQueues := make([]gin.H, 0, len(queues))
		for i := range queues {
			customer := queues[i].FindCustomer(uid)
			if customer == nil {
				continue
			}
			activeQueues = append(activeQueues, gin.H{
				"queueId":           queues[i].Queue_id,
				"queueName":         queues[i].Name,
				"serviceType":       queues[i].Service_type,
				"position":          customer.Position,
				"status":            customer.Status,
				"estimatedWaitTime": queues[i].CurrentWaitTime(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"activeQueues": activeQueues})
	}
}

// CallNextCustomer flips the first waiting customer to called. Admin only.
func CallNextCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		queueId := c.Param("queue_id")
		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": queueId}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}

		nextCustomer, err := queue.CallNext()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := saveQueue(ctx, &queue); err != nil {
			logger.Log.Errorw("queue save failed", "queue_id", queueId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to call next customer"})
			return
		}

		go ws.Publish(ws.QueueTopic(queueId), "customer-called", gin.H{
			"queueId":  queueId,
			"customer": nextCustomer,
		})

		c.JSON(http.StatusOK, gin.H{
			"message":  "next customer called",
			"customer": nextCustomer,
		})
	}
}

// MarkCustomerServed completes service for a called customer. Admin only.
func MarkCustomerServed() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		queueId := c.Param("queue_id")
		userId := c.Param("user_id")

		var queue models.Queue
		err := queueCollection.FindOne(ctx, bson.M{"queue_id": queueId}).Decode(&queue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
			return
		}

		if err := queue.MarkServed(userId); err != nil {
			if errors.Is(err, models.ErrNotInQueue) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := saveQueue(ctx, &queue); err != nil {
			logger.Log.Errorw("queue save failed", "queue_id", queueId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
			return
		}

		go ws.Publish(ws.QueueTopic(queueId), "queue-updated", gin.H{
			"queueId":       queueId,
			"customers":     queue.Customers,
			"currentNumber": queue.Current_number,
		})

		c.JSON(http.StatusOK, gin.H{"message": "customer marked as served"})
	}
}
