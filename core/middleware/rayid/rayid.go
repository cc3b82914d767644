// Package rayid tags every request with a RayID for log correlation.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the RayID on requests and responses.
	Header = "X-Ray-ID"
	// LocalKey is the fiber.Ctx local holding the RayID.
	LocalKey = "ray_id"
)

// New returns a middleware that reuses an incoming X-Ray-ID or generates one,
// stores it under the ray_id local and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
