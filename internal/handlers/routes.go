package handlers

import "github.com/gofiber/fiber/v2"

// Set groups every handler of the API.
type Set struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Ledger   *LedgerHandler
	Upload   *UploadHandler
}

// RegisterRoutes registers all routes on router. Back-office routes are
// wrapped in admin.
func (s Set) RegisterRoutes(router fiber.Router, admin ...fiber.Handler) {
	s.Auth.RegisterRoutes(router)
	s.Products.RegisterRoutes(router, admin...)
	s.Cart.RegisterRoutes(router)
	s.Checkout.RegisterRoutes(router)
	s.Orders.RegisterRoutes(router, admin...)
	s.Ledger.RegisterRoutes(router, admin...)
	s.Upload.RegisterRoutes(router, admin...)
}
