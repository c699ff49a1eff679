package request

type CreateGymRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Address string  `json:"address" validate:"required,min=5,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}

type UpdateGymRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Address string  `json:"address" validate:"required,min=5,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}
