package handlers

import (
	"errors"
	"log"

	"sweetshop/internal/cart"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"
	"sweetshop/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service or repository error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, cart.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTotalsMismatch),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, imagestore.ErrUnsupportedType):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, repositories.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrRegistrationClosed):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// respondError logs err and writes it with the status it maps to.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusFor(err)
	log.Printf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// guarded prepends the route guards to h.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, h)
}
