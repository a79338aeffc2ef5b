package services

import "errors"

// Business rule violations returned by the services. Handlers map them to
// HTTP statuses with errors.Is.
var (
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTotalsMismatch     = errors.New("totals mismatch")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is not available")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
)
