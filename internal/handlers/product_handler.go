package handlers

import (
	"fmt"
	"strings"

	"sweetshop/internal/catalog"
	"sweetshop/internal/models"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. Writes go through admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, admin ...fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/browse", h.HandleBrowseProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", guarded(admin, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(admin, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(admin, h.HandleDeleteProduct)...)
}

// HandleGetProducts lists every product, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

type browseQuery struct {
	Search       string `query:"search"`
	MaxPrice     string `query:"max_price"`
	Category     string `query:"category"`
	Availability string `query:"availability" validate:"omitempty,oneof=inStock outOfStock"`
	Page         int    `query:"page"`
	PageSize     int    `query:"page_size" validate:"gte=0,lte=100"`
}

// HandleBrowseProducts returns one page of the filtered catalog.
func (h *ProductHandler) HandleBrowseProducts(c *fiber.Ctx) error {
	var q browseQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(q); err != nil {
		return validationFailed(c, err)
	}

	f := catalog.Filter{
		Search:       q.Search,
		Category:     q.Category,
		Availability: q.Availability,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}
	if s := strings.TrimSpace(q.MaxPrice); s != "" {
		max, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  map[string]string{"max_price": fmt.Sprintf("'%s' is not a number", s)},
			})
		}
		f.MaxPrice = &max
	}

	page, err := h.service.BrowseProducts(c.UserContext(), f)
	if err != nil {
		return respondError(c, err, "Could not browse products")
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Could not retrieve product %s", productID))
	}
	return c.JSON(product)
}

// parseDraft decodes a product body. Products are available unless the
// body says otherwise.
func (h *ProductHandler) parseDraft(c *fiber.Ctx) (models.ProductDraft, error) {
	draft := models.ProductDraft{Available: true}
	if err := c.BodyParser(&draft); err != nil {
		return draft, &bodyError{err}
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Category = strings.TrimSpace(draft.Category)
	return draft, h.validate.Struct(draft)
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	draft, err := h.parseDraft(c)
	if err != nil {
		return rejectRequest(c, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	draft, err := h.parseDraft(c)
	if err != nil {
		return rejectRequest(c, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), draft)
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}
