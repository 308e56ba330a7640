package attendance

import (
	"context"
	"errors"
	"time"

	"erp-core/feature/attendance/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmployeeNotFound is returned when no employee matches the submitted code.
var ErrEmployeeNotFound = errors.New("employee not found")

// MaxLocationLength bounds the optional location field of a punch event.
const MaxLocationLength = 255

// ValidationError carries field-level validation messages for a rejected
// punch event.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	return "punch event validation failed"
}

// IngestInput is a single punch event from an attendance device.
type IngestInput struct {
	EmployeeCode string
	Timestamp    time.Time
	Type         string
	Location     string
}

// Validate checks the event fields and returns field-level errors.
func (in IngestInput) Validate() ValidationError {
	errs := ValidationError{}
	if in.EmployeeCode == "" {
		errs["employee_code"] = "employee_code is required"
	}
	if in.Timestamp.IsZero() {
		errs["timestamp"] = "timestamp is required"
	}
	if in.Type != models.PunchIn && in.Type != models.PunchOut {
		errs["type"] = "type must be 'in' or 'out'"
	}
	if len(in.Location) > MaxLocationLength {
		errs["location"] = "location must be at most 255 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Service reconciles punch events into daily attendance records.
type Service struct {
	db         *gorm.DB
	logger     *zap.Logger
	lateCutoff time.Duration
}

// NewService creates a new attendance service.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config) (*Service, error) {
	cutoff, err := cfg.CutoffOffset()
	if err != nil {
		return nil, err
	}
	return &Service{
		db:         db,
		logger:     logger,
		lateCutoff: cutoff,
	}, nil
}

// DayStart normalizes a timestamp to the start of its containing calendar
// day. The day boundary is taken in the zone the event timestamp carries,
// so a device reports against its own local day.
func DayStart(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// Ingest reconciles one punch event into the employee's day-bucket record
// and returns the record id.
//
// Check-in is first-writer-wins for the day; check-out is latest-writer-wins
// and only ever advances. Replaying an event is therefore a no-op for the
// time fields. A non-empty location always overwrites the stored one.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (uint, error) {
	if errs := in.Validate(); errs != nil {
		return 0, errs
	}

	var emp models.Employee
	err := s.db.WithContext(ctx).
		Where("employee_code = ?", in.EmployeeCode).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEmployeeNotFound
		}
		return 0, err
	}

	day := DayStart(in.Timestamp)

	var recordID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := lockDayRecord(tx, emp.ID, day)
		if err != nil {
			return err
		}

		s.applyPunch(rec, in)

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		recordID = rec.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("Punch event reconciled",
		zap.String("employee_code", in.EmployeeCode),
		zap.String("type", in.Type),
		zap.Uint("attendance_id", recordID),
	)
	return recordID, nil
}

// lockDayRecord returns the (employee, day) record under a write-intent lock,
// creating it with defaults on first punch of the day. The create goes
// through the (employee_id, date) unique index with a do-nothing conflict
// clause, so two concurrent first punches converge on a single row.
func lockDayRecord(tx *gorm.DB, employeeID uint, day time.Time) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord

	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND date = ?", employeeID, day)

	err := locked.First(&rec).Error
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       day,
		Status:     models.StatusAbsent,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	// Re-select under lock: the insert may have lost the race and hit the
	// conflict clause, in which case the winner's row is returned.
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND date = ?", employeeID, day).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// applyPunch mutates the record in memory according to the event type.
func (s *Service) applyPunch(rec *models.AttendanceRecord, in IngestInput) {
	switch in.Type {
	case models.PunchIn:
		if rec.CheckIn == nil {
			ts := in.Timestamp
			rec.CheckIn = &ts
			rec.Status = models.StatusPresent
			rec.IsLate = ts.After(DayStart(ts).Add(s.lateCutoff))
		}
	case models.PunchOut:
		if rec.CheckOut == nil || in.Timestamp.After(*rec.CheckOut) {
			ts := in.Timestamp
			rec.CheckOut = &ts
			if rec.CheckIn != nil {
				// Whole-minute precision, expressed in fractional hours.
				minutes := int64(rec.CheckOut.Sub(*rec.CheckIn) / time.Minute)
				rec.TotalHours = float64(minutes) / 60
			}
		}
	}

	if in.Location != "" {
		loc := in.Location
		rec.Location = &loc
	}
}

// Recent returns the employee's most recent attendance records, newest first.
func (s *Service) Recent(ctx context.Context, employeeCode string, limit int) ([]models.AttendanceRecord, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).
		Where("employee_code = ?", employeeCode).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 30
	}

	var records []models.AttendanceRecord
	err = s.db.WithContext(ctx).
		Where("employee_id = ?", emp.ID).
		Order("date desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
