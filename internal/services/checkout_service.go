package services

import (
	"context"
	"fmt"

	"sweetshop/internal/models"
	"sweetshop/pkg/whatsapp"
)

// CheckoutResult is the recorded order and the chat link that hands it to the shop.
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// CheckoutService turns a session cart into an order.
type CheckoutService struct {
	carts          *CartService
	orders         *OrderService
	whatsAppNumber string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(carts *CartService, orders *OrderService, whatsAppNumber string) *CheckoutService {
	return &CheckoutService{
		carts:          carts,
		orders:         orders,
		whatsAppNumber: whatsAppNumber,
	}
}

// Checkout creates a pending order from the cart, empties the cart and
// builds the pre-filled WhatsApp link.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string, customer models.Customer) (*CheckoutResult, error) {
	items := s.carts.Items(cartID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := s.orders.CreateOrder(ctx, models.OrderDraft{Customer: customer, Items: items})
	if err != nil {
		return nil, err
	}
	s.carts.Clear(cartID)

	return &CheckoutResult{
		Order:       order,
		WhatsAppURL: whatsapp.Link(s.whatsAppNumber, OrderMessage(order)),
	}, nil
}

// OrderMessage renders the chat message describing an order.
func OrderMessage(o *models.Order) string {
	var m whatsapp.Message
	m.Line("New order " + o.ID).
		Blank().
		Line("Name: " + o.Customer.Name).
		Line("Phone: " + o.Customer.Phone).
		Line("Email: " + o.Customer.Email).
		Line("Address: " + o.Customer.Address).
		Blank()
	for _, li := range o.Items {
		m.Line(fmt.Sprintf("%d x %s @ %s = %s", li.Quantity, li.Name, li.Price.StringFixed(2), li.LineTotal().StringFixed(2)))
	}
	m.Blank().
		Line("Subtotal: " + o.Totals.Subtotal.StringFixed(2)).
		Line("Shipping: " + o.Totals.Shipping.StringFixed(2)).
		Line("Total: " + o.Totals.GrandTotal.StringFixed(2))
	return m.String()
}
