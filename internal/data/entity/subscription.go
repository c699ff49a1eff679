package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionStatusActive         SubscriptionStatus = "active"
	SubscriptionStatusCancelled      SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired        SubscriptionStatus = "expired"
	SubscriptionStatusSuspended      SubscriptionStatus = "suspended"
)

// Subscription leaves PendingPayment only when its subscription payment
// reaches Approved. One active subscription per owner at a time.
type Subscription struct {
	Base
	OwnerID   uuid.UUID          `db:"owner_id"`
	GymID     uuid.UUID          `db:"gym_id"`
	PlanName  string             `db:"plan_name"`
	Price     float64            `db:"price"`
	Status    SubscriptionStatus `db:"status"`
	ExpiresAt *time.Time         `db:"expires_at"`
}
