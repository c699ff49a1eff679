package response

import (
	"time"

	"gym-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string                   `json:"id"`
	ClassID     string                   `json:"class_id"`
	UserID      string                   `json:"user_id"`
	ClassName   string                   `json:"class_name,omitempty"`
	GymName     string                   `json:"gym_name,omitempty"`
	StartsAt    *time.Time               `json:"starts_at,omitempty"`
	Status      entity.ReservationStatus `json:"status"`
	Notes       *string                  `json:"notes,omitempty"`
	BookedAt    time.Time                `json:"booked_at"`
	CancelledAt *time.Time               `json:"cancelled_at,omitempty"`
}

func ReservationToResponse(reservation *entity.Reservation) BookingResponse {
	return BookingResponse{
		ID:          reservation.ID.String(),
		ClassID:     reservation.ClassID.String(),
		UserID:      reservation.UserID.String(),
		Status:      reservation.Status,
		Notes:       reservation.Notes,
		BookedAt:    reservation.BookedAt,
		CancelledAt: reservation.CancelledAt,
	}
}
