package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that reports fields by their JSON name
// and compares decimal amounts with the numeric tags (gt, gte, ...). The
// money tag limits an amount to cents, matching the decimal(12,2) columns.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("money", isMoney)
	return v
}

// isMoney sees decimals through the custom type func above, as float64.
func isMoney(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Float64 {
		return false
	}
	d := decimal.NewFromFloat(fl.Field().Float())
	return d.Equal(d.Round(2))
}

// validationFailed renders the field errors of err as a 400 response.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		key := strings.SplitN(e.Namespace(), ".", 2)
		field := e.Field()
		if len(key) == 2 {
			field = key[1]
		}
		errorMessages[field] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// bodyError wraps a body that could not be decoded.
type bodyError struct{ err error }

func (e *bodyError) Error() string { return e.err.Error() }

// bind decodes the request body into out and validates it.
func bind(c *fiber.Ctx, v *validator.Validate, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &bodyError{err}
	}
	return v.Struct(out)
}

// rejectRequest answers a request that bind refused.
func rejectRequest(c *fiber.Ctx, err error) error {
	var be *bodyError
	if errors.As(err, &be) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return validationFailed(c, err)
}
