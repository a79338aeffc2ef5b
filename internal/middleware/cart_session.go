package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// Cart sessions are identified by a cookie, or by a header for clients
// that do not keep cookies.
const (
	CartCookie = "cart_id"
	CartHeader = "X-Cart-ID"

	localCartID = "cart_id"
	cartMaxAge  = 30 * 24 * time.Hour
)

// CartSession resolves the cart id of the request, issuing a new one when
// the client has none, and echoes it back in both the cookie and the header.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(CartHeader)
		if id == "" {
			id = c.Cookies(CartCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		} else {
			// the cart registry keys on this id
			id = utils.CopyString(id)
		}

		c.Cookie(&fiber.Cookie{
			Name:     CartCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(cartMaxAge),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Set(CartHeader, id)
		c.Locals(localCartID, id)
		return c.Next()
	}
}

// CartID returns the id resolved by CartSession.
func CartID(c *fiber.Ctx) string {
	id, _ := c.Locals(localCartID).(string)
	return id
}
