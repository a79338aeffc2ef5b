package services

import (
	"context"
	"fmt"

	"sweetshop/internal/models"
	"sweetshop/internal/pricing"
	"sweetshop/internal/repositories"
	"sweetshop/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	calc      pricing.Calculator
	events    EventPublisher // may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, calc pricing.Calculator, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		calc:      calc,
		events:    events,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder records a pending order from draft. Totals are always computed
// here; totals sent by the client must agree with them.
func (s *OrderService) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := s.calc.Compute(draft.Items)
	if !claimMatches(draft.Subtotal, totals.Subtotal) ||
		!claimMatches(draft.Shipping, totals.Shipping) ||
		!claimMatches(draft.GrandTotal, totals.GrandTotal) {
		return nil, fmt.Errorf("%w: expected grand total %s", ErrTotalsMismatch, totals.GrandTotal.StringFixed(2))
	}

	items := make([]models.LineItem, len(draft.Items))
	copy(items, draft.Items)

	order := &models.Order{
		Customer: draft.Customer,
		Items:    items,
		Totals:   totals,
		Status:   models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	publish(s.events, rabbitmq.OrderCreated, newOrderEvent(order))
	return order, nil
}

func claimMatches(claimed *decimal.Decimal, actual decimal.Decimal) bool {
	return claimed == nil || claimed.Equal(actual)
}

// SetStatus moves an order to the status named by raw.
func (s *OrderService) SetStatus(ctx context.Context, id, raw string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, next)
	}
	if order.Status == next {
		return order, nil
	}

	previous := order.Status
	updated, err := s.orderRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	ev := newOrderEvent(updated)
	ev.Previous = previous
	publish(s.events, rabbitmq.OrderStatusChanged, ev)
	return updated, nil
}
