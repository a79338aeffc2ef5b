package handlers

import (
	"log"

	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler turns the session cart into an order.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", middleware.CartSession(), h.HandleCheckout)
}

type checkoutRequest struct {
	Customer models.Customer `json:"customer"`
}

// HandleCheckout records the order and returns the WhatsApp handoff link.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := bind(c, h.validate, &req); err != nil {
		return rejectRequest(c, err)
	}

	res, err := h.service.Checkout(c.UserContext(), middleware.CartID(c), req.Customer)
	if err != nil {
		return respondError(c, err, "Checkout failed")
	}
	log.Printf("Checkout completed: order %s", res.Order.ID)
	return c.Status(fiber.StatusCreated).JSON(res)
}
