package reservation_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"erp-core/core/database"
	"erp-core/feature/reservation"
	"erp-core/feature/reservation/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleSweep(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Reservation{}, &models.Unit{}))

	unit := models.Unit{Status: models.UnitReserved}
	require.NoError(t, db.Create(&unit).Error)
	res := models.Reservation{
		UnitID:    unit.ID,
		Status:    models.ReservationActive,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&res).Error)

	feature := reservation.NewFeature(db, zap.NewNop())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	req := httptest.NewRequest("POST", "/reservations/sweep", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]int
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 1, body["expired"])

	var swept models.Reservation
	require.NoError(t, db.First(&swept, res.ID).Error)
	assert.Equal(t, models.ReservationExpired, swept.Status)
}
