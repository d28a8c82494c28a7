package middleware

import "github.com/gofiber/fiber/v2"

// NoCacheHeaders sets no-cache headers. Totals and PIN state must never
// be served from a client cache.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
