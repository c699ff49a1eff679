package request

type CreateBookingRequest struct {
	ClassID string  `json:"class_id" validate:"required,uuid4"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
