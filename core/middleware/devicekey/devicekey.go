// Package devicekey implements the device ingestion gateway.
//
// Hardware attendance devices authenticate every request with an opaque API
// key, supplied in the X-Device-Key header or as an api_key parameter. The
// middleware resolves the key to an active AttendanceDevice row, stores the
// device in the request locals for downstream handlers, and refreshes the
// device's last-seen bookkeeping.
//
// A missing key and an unknown or deactivated key both produce 401 with an
// error body; the two responses deliberately differ only in wording that does
// not reveal whether the key exists.
package devicekey

import (
	"time"

	"erp-core/core/logger"
	"erp-core/feature/attendance/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HeaderName is the request header carrying the device API key.
const HeaderName = "X-Device-Key"

// ParamName is the fallback query/body parameter carrying the key.
const ParamName = "api_key"

// LocalsKey is the fiber locals key under which the resolved device is stored.
const LocalsKey = "device"

// Config holds the middleware dependencies.
type Config struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// New creates the device authentication middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderName)
		if key == "" {
			key = c.Query(ParamName)
		}
		if key == "" {
			key = c.FormValue(ParamName)
		}
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Device API key missing",
			})
		}

		var device models.AttendanceDevice
		err := cfg.DB.WithContext(c.Context()).
			Where("api_key = ? AND active = ?", key, true).
			First(&device).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				logger.WithRayID(cfg.Logger, c).Error("Device lookup failed", zap.Error(err))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid device",
			})
		}

		c.Locals(LocalsKey, &device)

		// Best-effort bookkeeping: a failed last-seen update must not fail
		// the punch it accompanies.
		now := time.Now()
		ip := c.IP()
		if err := cfg.DB.WithContext(c.Context()).
			Model(&models.AttendanceDevice{}).
			Where("id = ?", device.ID).
			Updates(map[string]any{"last_seen_at": now, "last_seen_ip": ip}).Error; err != nil {
			logger.WithRayID(cfg.Logger, c).Warn("Failed to update device last-seen",
				zap.Uint("device_id", device.ID),
				zap.Error(err),
			)
		}

		return c.Next()
	}
}

// FromContext returns the device resolved by the middleware, or nil when the
// request did not pass through it.
func FromContext(c *fiber.Ctx) *models.AttendanceDevice {
	if dev, ok := c.Locals(LocalsKey).(*models.AttendanceDevice); ok {
		return dev
	}
	return nil
}
