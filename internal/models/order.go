package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=500"`
}

// OrderDraft is an order as submitted by a client. Totals are optional; when
// present they must match what the server computes from Items.
type OrderDraft struct {
	Customer   Customer         `json:"customer"`
	Items      []LineItem       `json:"items" validate:"required,min=1,dive"`
	Subtotal   *decimal.Decimal `json:"subtotal,omitempty"`
	Shipping   *decimal.Decimal `json:"shipping,omitempty"`
	GrandTotal *decimal.Decimal `json:"grand_total,omitempty"`
}

// Order represents a persisted customer order. Items are a snapshot taken at
// checkout and never change afterwards; Status is the only mutable field.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Customer  Customer    `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Items     []LineItem  `json:"items" gorm:"serializer:json"`
	Totals    Totals      `json:"totals" gorm:"embedded"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt time.Time   `json:"updated_at"`
}
