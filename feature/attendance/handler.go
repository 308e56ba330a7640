package attendance

import (
	"errors"
	"time"

	"erp-core/core/logger"
	"erp-core/core/middleware/devicekey"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for attendance ingestion.
type Handler struct {
	service    *Service
	deviceAuth fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, deviceAuth fiber.Handler) *Handler {
	return &Handler{service: service, deviceAuth: deviceAuth}
}

// RegisterRoutes registers the attendance routes. The ingestion endpoint is
// guarded by the device key gateway; the read endpoint is not.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/attendance")
	group.Post("/", h.deviceAuth, h.HandleIngest)
	group.Get("/:employee_code", h.HandleRecent)
}

// IngestRequest is the JSON payload sent by attendance devices.
type IngestRequest struct {
	EmployeeCode string `json:"employee_code"`
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type"`
	Location     string `json:"location"`
}

// HandleIngest accepts a punch event from an authenticated device.
// @Summary Ingest Punch Event
// @Description Reconcile a device punch-in/punch-out event into the employee's daily attendance record.
// @Tags attendance
// @Accept json
// @Produce json
// @Param X-Device-Key header string true "Device API key"
// @Param event body IngestRequest true "Punch event"
// @Success 200 {object} map[string]interface{} "success + attendance_id"
// @Failure 401 {object} map[string]string "Unauthorized device"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 422 {object} map[string]interface{} "Validation errors"
// @Router /attendance [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": fiber.Map{"body": "request body must be valid JSON"},
		})
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": fiber.Map{"timestamp": "timestamp must be a valid ISO-8601 date-time"},
		})
	}

	if dev := devicekey.FromContext(c); dev != nil {
		l = l.With(zap.String("device", dev.Name))
	}

	id, err := h.service.Ingest(c.Context(), IngestInput{
		EmployeeCode: req.EmployeeCode,
		Timestamp:    ts,
		Type:         req.Type,
		Location:     req.Location,
	})
	if err != nil {
		var verr ValidationError
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Employee not found",
			})
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": verr,
			})
		default:
			l.Error("Punch ingestion failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"attendance_id": id,
	})
}

// HandleRecent returns an employee's most recent attendance records.
// @Summary List Recent Attendance
// @Description Get the most recent daily attendance records for an employee, newest first.
// @Tags attendance
// @Produce json
// @Param employee_code path string true "Employee code"
// @Param limit query int false "Maximum records to return (default 30)"
// @Success 200 {array} models.AttendanceRecord
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /attendance/{employee_code} [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	code := c.Params("employee_code")
	limit := c.QueryInt("limit")

	records, err := h.service.Recent(c.Context(), code, limit)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Employee not found",
			})
		}
		logger.WithRayID(h.service.logger, c).Error("Attendance listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(records)
}
