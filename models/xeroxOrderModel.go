package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	XeroxPending    = "pending"
	XeroxProcessing = "processing"
	XeroxReady      = "ready"
	XeroxCompleted  = "completed"
	XeroxCancelled  = "cancelled"

	PaperA4     = "A4"
	PaperA3     = "A3"
	PaperLetter = "Letter"

	ColorBlack = "black"
	ColorColor = "color"

	BindingNone      = "none"
	BindingStaples   = "staples"
	BindingSpiral    = "spiral"
	BindingHardcover = "hardcover"
)

type UploadedFile struct {
	Filename      string `bson:"filename" json:"filename"`
	Original_name string `bson:"original_name" json:"originalName"`
	Path          string `bson:"path" json:"path"`
	Size          int64  `bson:"size" json:"size"`
	Mimetype      string `bson:"mimetype" json:"mimetype"`
}

type XeroxOrder struct {
	ID                   primitive.ObjectID `bson:"_id" json:"-"`
	Order_id             string             `bson:"order_id" json:"id"`
	User_id              string             `bson:"user_id" json:"userId"`
	Files                []UploadedFile     `bson:"files" json:"files"`
	Copies               int                `bson:"copies" json:"copies" validate:"required,min=1,max=100"`
	Paper_size           string             `bson:"paper_size" json:"paperSize" validate:"required,eq=A4|eq=A3|eq=Letter"`
	Color_mode           string             `bson:"color_mode" json:"colorMode" validate:"required,eq=black|eq=color"`
	Binding              string             `bson:"binding" json:"binding" validate:"eq=none|eq=staples|eq=spiral|eq=hardcover"`
	Total_pages          int                `bson:"total_pages" json:"totalPages"`
	Total_price          float64            `bson:"total_price" json:"totalPrice"`
	Payment_method       string             `bson:"payment_method" json:"paymentMethod"`
	Payment_status       string             `bson:"payment_status" json:"paymentStatus"`
	Status               string             `bson:"status" json:"status"`
	Special_instructions string             `bson:"special_instructions" json:"specialInstructions,omitempty"`
	Created_at           time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at           time.Time          `bson:"updated_at" json:"updatedAt"`
}

var xeroxTransitions = map[string][]string{
	XeroxPending:    {XeroxProcessing, XeroxCancelled},
	XeroxProcessing: {XeroxReady, XeroxCancelled},
	XeroxReady:      {XeroxCompleted, XeroxCancelled},
}

func CanTransitionXerox(from string, to string) bool {
	for _, allowed := range xeroxTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsXeroxStatus(status string) bool {
	switch status {
	case XeroxPending, XeroxProcessing, XeroxReady, XeroxCompleted, XeroxCancelled:
		return true
	}
	return false
}

// XeroxUnitPrice is the per-page per-copy price for the chosen options.
// Base 2, A3 costs half again, color doubles, binding adds a flat surcharge.
func XeroxUnitPrice(paperSize string, colorMode string, binding string) float64 {
	price := 2.0
	if paperSize == PaperA3 {
		price *= 1.5
	}
	if colorMode == ColorColor {
		price *= 2
	}
	switch binding {
	case BindingStaples:
		price += 5
	case BindingSpiral:
		price += 15
	case BindingHardcover:
		price += 25
	}
	return price
}

// XeroxTotalPrice prices a full job. Total pages is the uploaded file count:
// one page is assumed per file, page-count analysis of the documents is out
// of scope.
func XeroxTotalPrice(unitPrice float64, totalPages int, copies int) float64 {
	return unitPrice * float64(totalPages) * float64(copies)
}
