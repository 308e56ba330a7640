package attendance

import (
	"context"
	"testing"
	"time"

	"erp-core/feature/attendance/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for asserting the SQL the reconciler emits.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestIngest_ConcurrentFirstPunchConverges(t *testing.T) {
	// Two devices can race on the first punch of a brand-new day. The loser
	// of the insert race must absorb the unique-index conflict and converge
	// on the winner's row via the locked re-select, all inside one
	// transaction with write-intent locks.
	gormDB, mock := setupMockDB(t)
	svc, err := NewService(gormDB, zap.NewNop(), Config{LateCutoff: "09:00"})
	require.NoError(t, err)

	ts := time.Date(2024, 3, 11, 8, 45, 0, 0, time.UTC)
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `employees` WHERE employee_code = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_code", "name"}).
			AddRow(3, "EMP001", "Test Employee"))

	mock.ExpectBegin()
	// First locked lookup misses: the row does not exist yet.
	mock.ExpectQuery("SELECT \\* FROM `attendance_records` WHERE employee_id = \\? AND date = \\?(.*)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "date", "status"}))
	// The insert loses the race: the conflict clause swallows it, zero rows.
	mock.ExpectExec("INSERT INTO `attendance_records`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// The locked re-select returns the row the concurrent winner created.
	mock.ExpectQuery("SELECT \\* FROM `attendance_records` WHERE employee_id = \\? AND date = \\?(.*)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "date", "status", "is_late", "total_hours"}).
			AddRow(42, 3, day, models.StatusAbsent, false, 0))
	mock.ExpectExec("UPDATE `attendance_records` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := svc.Ingest(context.Background(), IngestInput{
		EmployeeCode: "EMP001",
		Timestamp:    ts,
		Type:         models.PunchIn,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}
