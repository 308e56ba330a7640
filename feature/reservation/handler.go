package reservation

import (
	"time"

	"erp-core/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reservation maintenance.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reservation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reservations")
	group.Post("/sweep", h.HandleSweep)
}

// HandleSweep runs one expiry sweep cycle on demand.
// @Summary Sweep Expired Reservations
// @Description Expire every active reservation past its expiry time and release the underlying units. Same operation the scheduled command runs.
// @Tags reservations
// @Produce json
// @Success 200 {object} map[string]int "expired count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reservations/sweep [post]
func (h *Handler) HandleSweep(c *fiber.Ctx) error {
	count, err := h.service.Sweep(c.Context(), time.Now())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Reservation sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"expired": count,
	})
}
