package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. An order starts as pending and moves to processing once
// payment is confirmed; later fulfillment states are driven elsewhere.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a snapshot of a purchased line at order time. It copies the
// product name and unit price so later catalog edits do not rewrite history.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // unit price at the time of order
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Size      string  `json:"size,omitempty"`
	Flavor    string  `json:"flavor,omitempty"`
}

// ShippingAddress is the delivery destination embedded in an order.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentResult is the gateway confirmation payload stored when an order is
// marked paid.
type PaymentResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Email         string `json:"email"`
}

// Order represents a customer order.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;type:varchar(40)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	PaymentMethod   string          `json:"payment_method"`
	ItemsPrice      float64         `json:"items_price"`
	TaxPrice        float64         `json:"tax_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TotalPrice      float64         `json:"total_price"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentResult   PaymentResult   `json:"payment_result" gorm:"embedded;embeddedPrefix:pay_"`
	IsDelivered     bool            `json:"is_delivered"`
	Status          string          `json:"status" gorm:"type:varchar(20)"`
	gorm.Model      `json:"-"`
}
