// Package rayid tags every request with a unique ray id.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id in requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber Locals key holding the ray id.
	LocalsKey = "ray_id"
)

// New returns the middleware. An incoming X-Ray-ID header is kept so that
// callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
