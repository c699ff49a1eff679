package gateway

import (
	"context"
	"time"
)

// PaymentInfo is the canonical payment object fetched from the provider.
// Field names mirror the Mercado Pago payment resource.
type PaymentInfo struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	ExternalReference string     `json:"external_reference"`
	DateApproved      *time.Time `json:"date_approved"`
	StatusDetail      string     `json:"status_detail"`
	PaymentMethodID   string     `json:"payment_method_id"`
	PaymentTypeID     string     `json:"payment_type_id"`
}

// PaymentGateway abstracts the payment provider. Webhook reconciliation
// only ever needs to fetch authoritative payment state by provider ID.
type PaymentGateway interface {
	FetchPayment(ctx context.Context, paymentID string) (*PaymentInfo, error)
}
