package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPayment is the recurring-payment record for a subscription.
// Same lifecycle shape as Payment; looked up first when resolving a
// webhook's external reference.
type SubscriptionPayment struct {
	Base
	SubscriptionID    uuid.UUID      `db:"subscription_id"`
	OwnerID           uuid.UUID      `db:"owner_id"`
	Amount            float64        `db:"amount"`
	Status            PaymentStatus  `db:"status"`
	ExternalReference string         `db:"external_reference"`
	ExternalPaymentID *string        `db:"external_payment_id"`
	PaidAt            *time.Time     `db:"paid_at"`
	Metadata          map[string]any `db:"metadata"`
}
