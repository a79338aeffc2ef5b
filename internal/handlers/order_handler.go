package handlers

import (
	"fmt"
	"log"

	"sweetshop/internal/models"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes. Anyone may place an order;
// reading and updating orders goes through admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, admin ...fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", guarded(admin, h.HandleGetOrders)...)
	orderRoutes.Get("/:id", guarded(admin, h.HandleGetOrderByID)...)
	orderRoutes.Put("/:id", guarded(admin, h.HandleUpdateOrderStatus)...)
}

// HandleGetOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Could not retrieve order %s", orderID))
	}
	return c.JSON(order)
}

// HandleCreateOrder records an order from a full draft.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var draft models.OrderDraft
	if err := bind(c, h.validate, &draft); err != nil {
		return rejectRequest(c, err)
	}

	createdOrder, err := h.service.CreateOrder(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err, "Could not create order")
	}
	log.Printf("Order %s created for %s", createdOrder.ID, createdOrder.Customer.Name)
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order along its status workflow.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req statusRequest
	if err := bind(c, h.validate, &req); err != nil {
		return rejectRequest(c, err)
	}

	order, err := h.service.SetStatus(c.UserContext(), orderID, req.Status)
	if err != nil {
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(order)
}
