package response

import (
	"time"

	"gym-booking/internal/data/entity"
)

type ClassResponse struct {
	ID             string    `json:"id"`
	GymID          string    `json:"gym_id"`
	Name           string    `json:"name"`
	StartsAt       time.Time `json:"starts_at"`
	Capacity       int       `json:"capacity"`
	Price          float64   `json:"price"`
	IsActive       bool      `json:"is_active"`
	ConfirmedCount int64     `json:"confirmed_count"`
	SpotsLeft      int64     `json:"spots_left"`
}

func ClassToResponse(class *entity.ClassSession, confirmedCount int64) ClassResponse {
	spotsLeft := int64(class.Capacity) - confirmedCount
	if spotsLeft < 0 {
		spotsLeft = 0
	}

	return ClassResponse{
		ID:             class.ID.String(),
		GymID:          class.GymID.String(),
		Name:           class.Name,
		StartsAt:       class.StartsAt,
		Capacity:       class.Capacity,
		Price:          class.Price,
		IsActive:       class.IsActive,
		ConfirmedCount: confirmedCount,
		SpotsLeft:      spotsLeft,
	}
}
