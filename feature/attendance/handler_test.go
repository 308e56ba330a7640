package attendance_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"erp-core/core/database"
	"erp-core/core/middleware/devicekey"
	"erp-core/feature/attendance"
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

	err = db.AutoMigrate(
		&models.AttendanceDevice{},
		&models.Employee{},
		&models.AttendanceRecord{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Employee{EmployeeCode: "EMP001", Name: "Test Employee"}).Error)
	require.NoError(t, db.Create(&models.AttendanceDevice{Name: "Lobby Clock", APIKey: "valid-key", Active: true}).Error)
	// Create substitutes the column's default:true for the zero-value bool,
	// so deactivate with an explicit single-column update.
	retired := models.AttendanceDevice{Name: "Retired Clock", APIKey: "inactive-key"}
	require.NoError(t, db.Create(&retired).Error)
	require.NoError(t, db.Model(&retired).Update("active", false).Error)

	feature, err := attendance.NewFeature(db, zap.NewNop(), attendance.Config{LateCutoff: "09:00"})
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	return app, db
}

func postPunch(t *testing.T, app *fiber.App, key string, body map[string]string) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/attendance", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(devicekey.HeaderName, key)
	}

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return resp.StatusCode, decoded
}

func TestHandleIngest_Success(t *testing.T) {
	app, db := setupApp(t)

	status, body := postPunch(t, app, "valid-key", map[string]string{
		"employee_code": "EMP001",
		"timestamp":     "2024-03-11T08:45:00Z",
		"type":          "in",
		"location":      "HQ",
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.NotZero(t, body["attendance_id"])

	// The gateway refreshes the device's last-seen bookkeeping.
	var dev models.AttendanceDevice
	require.NoError(t, db.Where("api_key = ?", "valid-key").First(&dev).Error)
	assert.NotNil(t, dev.LastSeenAt)
	assert.NotNil(t, dev.LastSeenIP)
}

func TestHandleIngest_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantMsg string
	}{
		{"Missing key", "", "Device API key missing"},
		{"Unknown key", "bogus-key", "Invalid device"},
		{"Inactive device", "inactive-key", "Invalid device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, db := setupApp(t)

			status, body := postPunch(t, app, tt.key, map[string]string{
				"employee_code": "EMP001",
				"timestamp":     "2024-03-11T08:45:00Z",
				"type":          "in",
			})

			assert.Equal(t, 401, status)
			assert.Equal(t, tt.wantMsg, body["error"])

			var n int64
			require.NoError(t, db.Model(&models.AttendanceRecord{}).Count(&n).Error)
			assert.EqualValues(t, 0, n)
		})
	}
}

func TestHandleIngest_QueryParamKey(t *testing.T) {
	app, _ := setupApp(t)

	payload, err := json.Marshal(map[string]string{
		"employee_code": "EMP001",
		"timestamp":     "2024-03-11T08:45:00Z",
		"type":          "in",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", fmt.Sprintf("/attendance?%s=valid-key", devicekey.ParamName), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleIngest_EmployeeNotFound(t *testing.T) {
	app, db := setupApp(t)

	status, body := postPunch(t, app, "valid-key", map[string]string{
		"employee_code": "GHOST",
		"timestamp":     "2024-03-11T08:45:00Z",
		"type":          "in",
	})

	assert.Equal(t, 404, status)
	assert.Equal(t, "Employee not found", body["error"])

	var n int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestHandleIngest_Validation(t *testing.T) {
	app, _ := setupApp(t)

	t.Run("Bad timestamp", func(t *testing.T) {
		status, body := postPunch(t, app, "valid-key", map[string]string{
			"employee_code": "EMP001",
			"timestamp":     "yesterday",
			"type":          "in",
		})

		assert.Equal(t, 422, status)
		errs, ok := body["errors"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "timestamp")
	})

	t.Run("Bad type", func(t *testing.T) {
		status, body := postPunch(t, app, "valid-key", map[string]string{
			"employee_code": "EMP001",
			"timestamp":     "2024-03-11T08:45:00Z",
			"type":          "lunch",
		})

		assert.Equal(t, 422, status)
		errs, ok := body["errors"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "type")
	})
}

func TestHandleRecent(t *testing.T) {
	app, _ := setupApp(t)

	for _, day := range []string{"11", "12"} {
		status, _ := postPunch(t, app, "valid-key", map[string]string{
			"employee_code": "EMP001",
			"timestamp":     "2024-03-" + day + "T08:45:00Z",
			"type":          "in",
		})
		require.Equal(t, 200, status)
	}

	req := httptest.NewRequest("GET", "/attendance/EMP001", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var records []models.AttendanceRecord
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 2)

	req = httptest.NewRequest("GET", "/attendance/GHOST", nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
