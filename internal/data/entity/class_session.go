package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClassSession is a bookable class with fixed capacity. Capacity is set at
// creation and never changed by the booking flow.
type ClassSession struct {
	Base
	GymID    uuid.UUID `db:"gym_id"`
	Name     string    `db:"name"`
	StartsAt time.Time `db:"starts_at"`
	Capacity int       `db:"capacity"`
	Price    float64   `db:"price"`
	IsActive bool      `db:"is_active"`
}
