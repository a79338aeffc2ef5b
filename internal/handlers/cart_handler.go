package handlers

import (
	"sweetshop/internal/middleware"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the cart routes behind the cart session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.CartSession())
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the session cart with its totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.View(middleware.CartID(c)))
}

// HandleAddItem adds a product to the cart; a missing quantity means one.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req := addItemRequest{Quantity: 1}
	if err := bind(c, h.validate, &req); err != nil {
		return rejectRequest(c, err)
	}
	view, err := h.service.AddItem(c.UserContext(), middleware.CartID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.JSON(view)
}

// HandleUpdateItem sets the quantity of a cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req quantityRequest
	if err := bind(c, h.validate, &req); err != nil {
		return rejectRequest(c, err)
	}
	view, err := h.service.UpdateItem(middleware.CartID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(view)
}

// HandleRemoveItem drops a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	view, err := h.service.RemoveItem(middleware.CartID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	return c.JSON(view)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	return c.JSON(h.service.Clear(middleware.CartID(c)))
}
