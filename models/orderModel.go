package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	PaymentOnline  = "online"
	PaymentOffline = "offline"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

var (
	ErrEmptyCart          = errors.New("order must contain at least one item")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrWrongServiceType   = errors.New("menu item does not belong to this service")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
)

type OrderItem struct {
	Menu_item_id string  `bson:"menu_item_id" json:"menuItemId"`
	Name         string  `bson:"name" json:"name"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	Total        float64 `bson:"total" json:"total"`
}

type Order struct {
	ID                   primitive.ObjectID `bson:"_id" json:"-"`
	Order_id             string             `bson:"order_id" json:"id"`
	User_id              string             `bson:"user_id" json:"userId"`
	Items                []OrderItem        `bson:"items" json:"items"`
	Total                float64            `bson:"total" json:"total"`
	Status               string             `bson:"status" json:"status"`
	Service_type         string             `bson:"service_type" json:"serviceType"`
	Payment_method       string             `bson:"payment_method" json:"paymentMethod"`
	Payment_status       string             `bson:"payment_status" json:"paymentStatus"`
	Special_instructions string             `bson:"special_instructions" json:"specialInstructions,omitempty"`
	Created_at           time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at           time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CartItem is one requested line before pricing. The client never supplies a
// price; it is always taken from the menu at placement time.
type CartItem struct {
	Item_id  string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

var orderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
}

// CanTransitionOrder reports whether a status change is allowed. Completed
// and cancelled are terminal.
func CanTransitionOrder(from string, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// BuildOrderItems validates every cart line against the menu and prices the
// order. The pass is all-or-nothing: a missing, unavailable or wrong-service
// item fails the whole cart and nothing gets persisted.
func BuildOrderItems(cart []CartItem, serviceType string, lookup func(itemId string) (*MenuItem, error)) ([]OrderItem, float64, error) {
	if len(cart) == 0 {
		return nil, 0, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(cart))
	total := 0.0
	for _, line := range cart {
		menuItem, err := lookup(line.Item_id)
		if err != nil || menuItem == nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrItemNotFound, line.Item_id)
		}
		if !menuItem.IsAvailable() {
			return nil, 0, fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.Name)
		}
		if menuItem.Service_type != serviceType {
			return nil, 0, fmt.Errorf("%w: %s", ErrWrongServiceType, menuItem.Name)
		}

		lineTotal := menuItem.Price * float64(line.Quantity)
		total += lineTotal
		items = append(items, OrderItem{
			Menu_item_id: menuItem.Item_id,
			Name:         menuItem.Name,
			Price:        menuItem.Price,
			Quantity:     line.Quantity,
			Total:        lineTotal,
		})
	}
	return items, total, nil
}

// QRPayload is the content encoded into a canteen order's QR code. Built
// from the order's immutable fields on demand, never stored pre-rendered.
type QRPayload struct {
	Order_id  string          `json:"orderId"`
	User_id   string          `json:"userId"`
	Total     float64         `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
	Items     []QRPayloadItem `json:"items"`
}

type QRPayloadItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (o *Order) QRData() QRPayload {
	items := make([]QRPayloadItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, QRPayloadItem{Name: item.Name, Quantity: item.Quantity})
	}
	return QRPayload{
		Order_id:  o.Order_id,
		User_id:   o.User_id,
		Total:     o.Total,
		Timestamp: o.Created_at,
		Items:     items,
	}
}
