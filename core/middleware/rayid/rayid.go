// Package rayid provides request tracing middleware.
//
// Every incoming request is assigned a unique RayID which is stored in the
// request locals and echoed back in the X-Ray-ID response header. The
// logger package picks it up via logger.WithRayID.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's RayID.
const HeaderName = "X-Ray-ID"

// New creates the RayID middleware.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Honour an inbound id from an upstream proxy, otherwise mint one.
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
