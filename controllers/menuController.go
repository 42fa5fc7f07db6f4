package controllers

import (
	"context"
	"net/http"
	"time"

	"campus-services-backend/database"
	"campus-services-backend/logger"
	"campus-services-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menuItem")

// GetMenuItems returns all available items sorted by category then name.
func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
		cursor, err := menuCollection.Find(ctx, bson.M{"available": true}, opts)
		if err != nil {
			logger.Log.Errorw("menu listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get menu"})
			return
		}
		var menuItems []models.MenuItem
		if err := cursor.All(ctx, &menuItems); err != nil {
			logger.Log.Errorw("menu decode failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menuItems": menuItems})
	}
}

func GetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var menuItem models.MenuItem
		err := menuCollection.FindOne(ctx, bson.M{"item_id": c.Param("item_id")}).Decode(&menuItem)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menuItem": menuItem})
	}
}

func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		categories, err := menuCollection.Distinct(ctx, "category", bson.M{})
		if err != nil {
			logger.Log.Errorw("category listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GetMenuByService filters the menu by business line (canteen or xerox).
func GetMenuByService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		serviceType := c.Param("service_type")
		if serviceType != models.ServiceCanteen && serviceType != models.ServiceXerox {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service type"})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
		cursor, err := menuCollection.Find(ctx, bson.M{"service_type": serviceType, "available": true}, opts)
		if err != nil {
			logger.Log.Errorw("service menu listing failed", "service_type", serviceType, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service menu"})
			return
		}
		var menuItems []models.MenuItem
		if err := cursor.All(ctx, &menuItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menuItems": menuItems})
	}
}

func SearchMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		query := c.Param("query")
		filter := bson.M{
			"available": true,
			"$or": []bson.M{
				{"name": bson.M{"$regex": query, "$options": "i"}},
				{"description": bson.M{"$regex": query, "$options": "i"}},
			},
		}
		cursor, err := menuCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			logger.Log.Errorw("menu search failed", "query", query, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search menu"})
			return
		}
		var menuItems []models.MenuItem
		if err := cursor.All(ctx, &menuItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menuItems": menuItems})
	}
}

// CreateMenuItem adds an item to the menu. Admin only.
func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var menuItem models.MenuItem
		if err := c.BindJSON(&menuItem); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&menuItem); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if menuItem.Available == nil {
			available := true
			menuItem.Available = &available
		}
		menuItem.ID = primitive.NewObjectID()
		menuItem.Item_id = menuItem.ID.Hex()
		menuItem.Created_at = time.Now()
		menuItem.Updated_at = menuItem.Created_at

		if _, err := menuCollection.InsertOne(ctx, menuItem); err != nil {
			logger.Log.Errorw("menu item insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add menu item"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "menu item added successfully",
			"menuItem": menuItem,
		})
	}
}

// UpdateMenuItem patches the provided fields. Admin only. Orders already
// placed keep their price/name snapshots.
func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req struct {
			Name         *string  `json:"name"`
			Description  *string  `json:"description"`
			Price        *float64 `json:"price"`
			Category     *string  `json:"category"`
			Image        *string  `json:"image"`
			Available    *bool    `json:"available"`
			Service_type *string  `json:"serviceType"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if req.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: *req.Name})
		}
		if req.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: *req.Description})
		}
		if req.Price != nil {
			if *req.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "price", Value: *req.Price})
		}
		if req.Category != nil {
			updateObj = append(updateObj, bson.E{Key: "category", Value: *req.Category})
		}
		if req.Image != nil {
			updateObj = append(updateObj, bson.E{Key: "image", Value: *req.Image})
		}
		if req.Available != nil {
			updateObj = append(updateObj, bson.E{Key: "available", Value: *req.Available})
		}
		if req.Service_type != nil {
			if *req.Service_type != models.ServiceCanteen && *req.Service_type != models.ServiceXerox {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service type"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "service_type", Value: *req.Service_type})
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		itemId := c.Param("item_id")
		result, err := menuCollection.UpdateOne(
			ctx,
			bson.M{"item_id": itemId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			logger.Log.Errorw("menu item update failed", "item_id", itemId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update menu item"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item updated successfully"})
	}
}

// DeleteMenuItem removes an item from the menu. Admin only.
func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		itemId := c.Param("item_id")
		result, err := menuCollection.DeleteOne(ctx, bson.M{"item_id": itemId})
		if err != nil {
			logger.Log.Errorw("menu item delete failed", "item_id", itemId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted successfully"})
	}
}
