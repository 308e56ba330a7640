package devicekey_test

import (
	"net/http/httptest"
	"testing"

	"erp-core/core/database"
	"erp-core/core/middleware/devicekey"
	"erp-core/feature/attendance/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AttendanceDevice{}))

	require.NoError(t, db.Create(&models.AttendanceDevice{Name: "Gate A", APIKey: "gate-a-key", Active: true}).Error)

	app := fiber.New()
	app.Use(devicekey.New(devicekey.Config{DB: db, Logger: zap.NewNop()}))
	app.Get("/probe", func(c *fiber.Ctx) error {
		dev := devicekey.FromContext(c)
		require.NotNil(t, dev)
		return c.JSON(fiber.Map{"device": dev.Name})
	})

	return app, db
}

func TestDeviceKey_HeaderAuth(t *testing.T) {
	app, db := setupApp(t)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(devicekey.HeaderName, "gate-a-key")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var dev models.AttendanceDevice
	require.NoError(t, db.Where("api_key = ?", "gate-a-key").First(&dev).Error)
	assert.NotNil(t, dev.LastSeenAt)
}

func TestDeviceKey_LastSeenFailureDoesNotRejectRequest(t *testing.T) {
	// The last-seen refresh is best-effort bookkeeping: a device that
	// authenticates must get through even when the update itself fails.
	app, db := setupApp(t)

	require.NoError(t, db.Migrator().DropColumn(&models.AttendanceDevice{}, "last_seen_at"))

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(devicekey.HeaderName, "gate-a-key")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDeviceKey_Rejections(t *testing.T) {
	app, _ := setupApp(t)

	t.Run("Missing key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Unknown key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set(devicekey.HeaderName, "who-dis")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
