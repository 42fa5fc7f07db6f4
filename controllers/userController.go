package controllers

import (
	"context"
	"net/http"
	"time"

	"campus-services-backend/database"
	"campus-services-backend/helpers"
	"campus-services-backend/logger"
	"campus-services-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

var validate = validator.New()

const requestTimeout = 10 * time.Second

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			logger.Log.Errorw("email lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}

		hashed, err := HashPassword(*user.Password)
		if err != nil {
			logger.Log.Errorw("password hashing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		user.Password = &hashed

		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
		user.Role = models.RoleStudent
		user.Orders = []string{}
		user.Xerox_orders = []string{}
		user.Queue_history = []models.QueueHistoryEntry{}
		user.Created_at = time.Now()
		user.Updated_at = user.Created_at

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			logger.Log.Errorw("user insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		token, err := helpers.GenerateToken(*user.Email, *user.Name, user.User_id, user.Role)
		if err != nil {
			logger.Log.Errorw("token generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "registered successfully",
			"token":   token,
			"user": gin.H{
				"id":    user.User_id,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var foundUser models.User
		err := userCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&foundUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		if !VerifyPassword(req.Password, *foundUser.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}

		token, err := helpers.GenerateToken(*foundUser.Email, *foundUser.Name, foundUser.User_id, foundUser.Role)
		if err != nil {
			logger.Log.Errorw("token generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    foundUser.User_id,
				"name":  foundUser.Name,
				"email": foundUser.Email,
				"role":  foundUser.Role,
			},
		})
	}
}

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": c.GetString("uid")}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		user.Password = nil
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// GetUsers lists all users with their order counts. Admin only.
func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cursor, err := userCollection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
		if err != nil {
			logger.Log.Errorw("user listing failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get users"})
			return
		}
		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			logger.Log.Errorw("user decode failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get users"})
			return
		}

		usersWithStats := make([]gin.H, 0, len(users))
		for _, user := range users {
			orderCount, _ := orderCollection.CountDocuments(ctx, bson.M{"user_id": user.User_id})
			xeroxCount, _ := xeroxCollection.CountDocuments(ctx, bson.M{"user_id": user.User_id})
			usersWithStats = append(usersWithStats, gin.H{
				"user":            user,
				"orderCount":      orderCount,
				"xeroxOrderCount": xeroxCount,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": usersWithStats})
	}
}

// UpdateUserRole promotes or demotes a user. Admin only.
func UpdateUserRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var req struct {
			Role string `json:"role" validate:"required,eq=student|eq=admin"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userId := c.Param("user_id")
		result, err := userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": userId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: req.Role}, {Key: "updated_at", Value: time.Now()}}}},
		)
		if err != nil {
			logger.Log.Errorw("role update failed", "user_id", userId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user role"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user role updated successfully"})
	}
}
