package attendance

import (
	"erp-core/core/middleware/devicekey"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the attendance feature, wiring the device key gateway
// in front of the ingestion endpoint.
func NewFeature(db *gorm.DB, logger *zap.Logger, cfg Config) (*Feature, error) {
	svc, err := NewService(db, logger, cfg)
	if err != nil {
		return nil, err
	}
	gateway := devicekey.New(devicekey.Config{DB: db, Logger: logger})
	h := NewHandler(svc, gateway)
	return &Feature{service: svc, handler: h}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "attendance"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
