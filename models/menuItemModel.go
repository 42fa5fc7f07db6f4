package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ServiceCanteen = "canteen"
	ServiceXerox   = "xerox"
)

type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id" json:"-"`
	Item_id      string             `bson:"item_id" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description  string             `bson:"description" json:"description" validate:"required,min=10"`
	Price        float64            `bson:"price" json:"price" validate:"min=0"`
	Category     string             `bson:"category" json:"category" validate:"required"`
	Image        string             `bson:"image" json:"image"`
	Available    *bool              `bson:"available" json:"available"`
	Service_type string             `bson:"service_type" json:"serviceType" validate:"required,eq=canteen|eq=xerox"`
	Created_at   time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsAvailable treats a missing flag as available, matching the schema
// default.
func (m *MenuItem) IsAvailable() bool {
	return m.Available == nil || *m.Available
}
