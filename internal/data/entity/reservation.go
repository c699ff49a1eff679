package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusWaitlisted ReservationStatus = "waitlisted"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusAttended   ReservationStatus = "attended"
	ReservationStatusNoShow     ReservationStatus = "no_show"
)

// Reservation holds a seat (or waitlist spot) in a class session.
// At most one non-cancelled reservation may exist per (user, class) pair.
type Reservation struct {
	Base
	ClassID     uuid.UUID         `db:"class_id"`
	UserID      uuid.UUID         `db:"user_id"`
	Status      ReservationStatus `db:"status"`
	Notes       *string           `db:"notes"`
	BookedAt    time.Time         `db:"booked_at"`
	CancelledAt *time.Time        `db:"cancelled_at"`
}
