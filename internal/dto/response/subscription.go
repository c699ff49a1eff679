package response

import (
	"time"

	"gym-booking/internal/data/entity"
)

type SubscriptionResponse struct {
	ID        string                    `json:"id"`
	OwnerID   string                    `json:"owner_id"`
	GymID     string                    `json:"gym_id"`
	PlanName  string                    `json:"plan_name"`
	Price     float64                   `json:"price"`
	Status    entity.SubscriptionStatus `json:"status"`
	ExpiresAt *time.Time                `json:"expires_at,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
}

type PaymentResponse struct {
	ID                string               `json:"id"`
	Amount            float64              `json:"amount"`
	Status            entity.PaymentStatus `json:"status"`
	ExternalReference string               `json:"external_reference"`
	ExternalPaymentID *string              `json:"external_payment_id,omitempty"`
	PaidAt            *time.Time           `json:"paid_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

type SubscriptionCheckoutResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Payment      PaymentResponse      `json:"payment"`
}

func SubscriptionToResponse(subscription *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        subscription.ID.String(),
		OwnerID:   subscription.OwnerID.String(),
		GymID:     subscription.GymID.String(),
		PlanName:  subscription.PlanName,
		Price:     subscription.Price,
		Status:    subscription.Status,
		ExpiresAt: subscription.ExpiresAt,
		CreatedAt: subscription.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                payment.ID.String(),
		Amount:            payment.Amount,
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
		ExternalPaymentID: payment.ExternalPaymentID,
		PaidAt:            payment.PaidAt,
		CreatedAt:         payment.CreatedAt,
	}
}

func SubscriptionPaymentToResponse(payment *entity.SubscriptionPayment) PaymentResponse {
	return PaymentResponse{
		ID:                payment.ID.String(),
		Amount:            payment.Amount,
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
		ExternalPaymentID: payment.ExternalPaymentID,
		PaidAt:            payment.PaidAt,
		CreatedAt:         payment.CreatedAt,
	}
}
