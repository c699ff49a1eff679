package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// MapProviderStatus maps the gateway's free-form status string onto the
// internal enum. Total and deliberately lossy: anything unrecognized
// (including "pending" and "in_process") degrades to Pending so an unknown
// provider status never fails a webhook.
func MapProviderStatus(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved":
		return PaymentStatusApproved
	case "cancelled", "rejected":
		return PaymentStatusCancelled
	case "refunded":
		return PaymentStatusRefunded
	default:
		return PaymentStatusPending
	}
}

// Payment is a one-off payment by a user to a gym.
// Metadata accumulates webhook diagnostic fields; keys are merged in,
// the bag is never replaced wholesale after the first webhook.
type Payment struct {
	Base
	UserID            uuid.UUID      `db:"user_id"`
	GymID             uuid.UUID      `db:"gym_id"`
	Amount            float64        `db:"amount"`
	Status            PaymentStatus  `db:"status"`
	ExternalReference string         `db:"external_reference"`
	ExternalPaymentID *string        `db:"external_payment_id"`
	PaidAt            *time.Time     `db:"paid_at"`
	Metadata          map[string]any `db:"metadata"`
}
