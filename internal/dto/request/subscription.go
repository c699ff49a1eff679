package request

type CreateSubscriptionRequest struct {
	GymID    string  `json:"gym_id" validate:"required,uuid4"`
	PlanName string  `json:"plan_name" validate:"required,min=2,max=50"`
	Price    float64 `json:"price" validate:"required,gte=1"`
}

type CreatePaymentRequest struct {
	GymID  string  `json:"gym_id" validate:"required,uuid4"`
	Amount float64 `json:"amount" validate:"required,gte=1"`
}
