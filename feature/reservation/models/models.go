package models

import (
	"time"
)

// Reservation statuses the sweeper cares about. Other states used by the
// booking module pass through untouched.
const (
	ReservationActive  = "active"
	ReservationExpired = "expired"
)

// Unit statuses the sweeper cares about.
const (
	UnitAvailable = "available"
	UnitReserved  = "reserved"
)

// Reservation holds a unit for a customer until it is confirmed or expires.
// The sweeper owns only the active->expired transition.
type Reservation struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	UnitID    uint      `gorm:"column:unit_id;not null;index" json:"unit_id"`
	Status    string    `gorm:"column:status;size:20;not null;index" json:"status"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Reservation.
func (Reservation) TableName() string {
	return "reservations"
}

// Unit is an inventory unit. Its status is shared with the booking module,
// so the sweeper re-checks it under lock before releasing it.
type Unit struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Status    string    `gorm:"column:status;size:20;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Unit.
func (Unit) TableName() string {
	return "units"
}
