// Package pricing turns line items into order totals.
package pricing

import (
	"sweetshop/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultShippingFee is the flat fee charged on any non-empty order.
var DefaultShippingFee = decimal.NewFromInt(50)

// Calculator computes totals with a fixed shipping fee.
type Calculator struct {
	ShippingFee decimal.Decimal
}

// NewCalculator returns a Calculator charging fee on non-empty orders.
func NewCalculator(fee decimal.Decimal) Calculator {
	return Calculator{ShippingFee: fee}
}

// Compute returns the subtotal, shipping and grand total of items.
func (c Calculator) Compute(items []models.LineItem) models.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = c.ShippingFee
	}
	return models.Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		GrandTotal: subtotal.Add(shipping),
	}
}

// ComputeTotals uses DefaultShippingFee.
func ComputeTotals(items []models.LineItem) models.Totals {
	return NewCalculator(DefaultShippingFee).Compute(items)
}
