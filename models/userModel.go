package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type QueueHistoryEntry struct {
	Queue_id  string     `bson:"queue_id" json:"queueId"`
	Joined_at time.Time  `bson:"joined_at" json:"joinedAt"`
	Left_at   *time.Time `bson:"left_at,omitempty" json:"leftAt,omitempty"`
	Position  int        `bson:"position" json:"position"`
}

type User struct {
	ID            primitive.ObjectID  `bson:"_id" json:"-"`
	User_id       string              `bson:"user_id" json:"id"`
	Name          *string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email         *string             `bson:"email" json:"email" validate:"required,email"`
	Password      *string             `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role          string              `bson:"role" json:"role"`
	Student_id    string              `bson:"student_id" json:"studentId"`
	Department    string              `bson:"department" json:"department"`
	Orders        []string            `bson:"orders" json:"orders"`
	Xerox_orders  []string            `bson:"xerox_orders" json:"xeroxOrders"`
	Queue_history []QueueHistoryEntry `bson:"queue_history" json:"queueHistory"`
	Created_at    time.Time           `bson:"created_at" json:"createdAt"`
	Updated_at    time.Time           `bson:"updated_at" json:"updatedAt"`
}
