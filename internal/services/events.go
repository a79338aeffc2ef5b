package services

import (
	"log"

	"sweetshop/internal/models"
	"sweetshop/pkg/rabbitmq"
)

// EventPublisher sends order events to interested consumers.
// *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, data interface{}) error
}

var _ EventPublisher = (*rabbitmq.Client)(nil)

type orderEvent struct {
	OrderID    string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Previous   models.OrderStatus `json:"previous_status,omitempty"`
	Customer   string             `json:"customer"`
	GrandTotal string             `json:"grand_total"`
	Items      int                `json:"items"`
}

func newOrderEvent(o *models.Order) orderEvent {
	return orderEvent{
		OrderID:    o.ID,
		Status:     o.Status,
		Customer:   o.Customer.Name,
		GrandTotal: o.Totals.GrandTotal.StringFixed(2),
		Items:      len(o.Items),
	}
}

// publish is best effort: a broker failure never fails the request.
func publish(p EventPublisher, routingKey string, ev orderEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, ev); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, ev.OrderID, err)
	}
}
