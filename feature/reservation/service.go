package reservation

import (
	"context"
	"errors"
	"time"

	"erp-core/feature/reservation/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service expires stale reservations and releases their units.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new reservation service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Sweep runs one expiry cycle: every active reservation whose expiry time is
// at or before now is marked expired, and its unit is released back to
// available when the unit is still reserved. The whole cycle is one
// transaction; any failure rolls back every change and the next scheduled
// run retries the same rows, since selection is by current state.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	count := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Write-intent lock on the batch keeps a concurrent sweep or a
		// racing booking confirmation off these rows until commit.
		var stale []models.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND expires_at <= ?", models.ReservationActive, now).
			Find(&stale).Error
		if err != nil {
			return err
		}

		for _, res := range stale {
			if err := tx.Model(&models.Reservation{}).
				Where("id = ?", res.ID).
				Update("status", models.ReservationExpired).Error; err != nil {
				return err
			}

			if err := releaseUnit(tx, res.UnitID); err != nil {
				return err
			}

			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("Expired stale reservations", zap.Int("count", count))
	}
	return count, nil
}

// releaseUnit moves a unit back to available, but only when it is still
// reserved. The unit's status is shared with the booking module, so the
// re-check happens under lock inside the sweep transaction: a unit that was
// concurrently sold, confirmed or taken out of service is left alone.
func releaseUnit(tx *gorm.DB, unitID uint) error {
	var unit models.Unit
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", unitID).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned reservation; expiring it is still correct.
			return nil
		}
		return err
	}

	if unit.Status != models.UnitReserved {
		return nil
	}

	return tx.Model(&models.Unit{}).
		Where("id = ?", unit.ID).
		Update("status", models.UnitAvailable).Error
}
