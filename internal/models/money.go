package models

import "github.com/shopspring/decimal"

// LineItem is one product line in a cart or an order snapshot.
type LineItem struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"gte=0,money"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
}

// LineTotal returns price × quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals holds the computed money amounts of a cart or an order.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2)"`
	Shipping   decimal.Decimal `json:"shipping" gorm:"type:decimal(12,2)"`
	GrandTotal decimal.Decimal `json:"grand_total" gorm:"type:decimal(12,2)"`
}

// Equal reports whether both totals carry the same amounts, ignoring scale.
func (t Totals) Equal(o Totals) bool {
	return t.Subtotal.Equal(o.Subtotal) && t.Shipping.Equal(o.Shipping) && t.GrandTotal.Equal(o.GrandTotal)
}
