package response

import (
	"time"

	"gym-booking/internal/data/entity"
)

type GymResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func GymToResponse(gym *entity.Gym) GymResponse {
	return GymResponse{
		ID:        gym.ID.String(),
		OwnerID:   gym.OwnerID.String(),
		Name:      gym.Name,
		Address:   gym.Address,
		Phone:     gym.Phone,
		IsActive:  gym.IsActive,
		CreatedAt: gym.CreatedAt,
	}
}
