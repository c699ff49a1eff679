package request

type CreateClassRequest struct {
	GymID    string  `json:"gym_id" validate:"required,uuid4"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	StartsAt string  `json:"starts_at" validate:"required"`
	Capacity int     `json:"capacity" validate:"required,gte=1"`
	Price    float64 `json:"price" validate:"gte=0"`
}
