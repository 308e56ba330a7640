package models

import (
	"time"
)

// Attendance record statuses.
const (
	StatusAbsent  = "absent"
	StatusPresent = "present"
)

// Punch event types accepted by the ingestion endpoint.
const (
	PunchIn  = "in"
	PunchOut = "out"
)

// AttendanceDevice identifies a physical punch-clock.
//
// Devices authenticate with an opaque API key. The LastSeen fields are
// refreshed on every successful authenticated request; devices are never
// deleted, only deactivated via Active=false.
type AttendanceDevice struct {
	ID         uint       `gorm:"column:id;primaryKey" json:"id"`
	Name       string     `gorm:"column:name;size:100" json:"name"`
	APIKey     string     `gorm:"column:api_key;size:64;uniqueIndex" json:"-"`
	Active     bool       `gorm:"column:active;default:true" json:"active"`
	LastSeenAt *time.Time `gorm:"column:last_seen_at" json:"last_seen_at"`
	LastSeenIP *string    `gorm:"column:last_seen_ip;size:45" json:"last_seen_ip"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for AttendanceDevice.
func (AttendanceDevice) TableName() string {
	return "attendance_devices"
}

// Employee is the subset of the ERP employee row the reconciler needs.
// Rows are owned by the wider HR module; this service only reads them,
// looked up by the employee code the punch devices transmit.
type Employee struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	EmployeeCode string `gorm:"column:employee_code;size:50;uniqueIndex" json:"employee_code"`
	Name         string `gorm:"column:name;size:100" json:"name"`
}

// TableName overrides the table name for Employee.
func (Employee) TableName() string {
	return "employees"
}

// AttendanceRecord is the day-bucket for one employee: at most one row per
// (employee, calendar day), enforced by the composite unique index. Created
// lazily on the first punch of the day.
type AttendanceRecord struct {
	ID         uint       `gorm:"column:id;primaryKey" json:"id"`
	EmployeeID uint       `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_date" json:"employee_id"`
	Date       time.Time  `gorm:"column:date;not null;uniqueIndex:idx_employee_date" json:"date"`
	CheckIn    *time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut   *time.Time `gorm:"column:check_out" json:"check_out"`
	Status     string     `gorm:"column:status;size:20;default:absent" json:"status"`
	IsLate     bool       `gorm:"column:is_late;default:false" json:"is_late"`
	TotalHours float64    `gorm:"column:total_hours;default:0" json:"total_hours"`
	Location   *string    `gorm:"column:location;size:255" json:"location"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for AttendanceRecord.
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
