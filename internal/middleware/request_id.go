package middleware

import (
	"docquiz/internal/util"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is the Locals key under which the request id is stored
const RequestIDKey = "request_id"

// RequestID assigns a ULID to each request and echoes it in the response,
// so a client-reported failure can be matched to its log lines.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-Id")
		if id == "" {
			id = util.NewULID()
		}
		c.Locals(RequestIDKey, id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}
