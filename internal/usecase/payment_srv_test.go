package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/dto/request"
	"gym-booking/pkg/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func paymentEnvelope(dataID string) *request.WebhookEnvelope {
	return &request.WebhookEnvelope{
		Type:   "payment",
		Data:   request.WebhookData{ID: request.WebhookID(dataID)},
		Action: "payment.updated",
	}
}

func seedSubscriptionWithPayment(repo *repository.Repository, externalRef string, status entity.PaymentStatus) (*entity.Subscription, *entity.SubscriptionPayment) {
	now := time.Now()
	subscription := &entity.Subscription{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:  uuid.New(),
		GymID:    uuid.New(),
		PlanName: "monthly",
		Price:    49.90,
		Status:   entity.SubscriptionStatusPendingPayment,
	}
	repo.Subscription.(*stubSubscriptionRepo).subscriptions[subscription.ID] = subscription

	payment := &entity.SubscriptionPayment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubscriptionID:    subscription.ID,
		OwnerID:           subscription.OwnerID,
		Amount:            49.90,
		Status:            status,
		ExternalReference: externalRef,
	}
	repo.SubscriptionPayment.(*stubSubscriptionPaymentRepo).payments[externalRef] = payment

	return subscription, payment
}

func seedOneOffPayment(repo *repository.Repository, externalRef string, status entity.PaymentStatus) *entity.Payment {
	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:            uuid.New(),
		GymID:             uuid.New(),
		Amount:            25.00,
		Status:            status,
		ExternalReference: externalRef,
	}
	repo.Payment.(*stubPaymentRepo).payments[externalRef] = payment
	return payment
}

func TestWebhookApprovalActivatesSubscription(t *testing.T) {
	repo := newTestRepository()
	subscription, payment := seedSubscriptionWithPayment(repo, "PAY-1", entity.PaymentStatusPending)

	approvedAt := time.Now().Add(-time.Minute)
	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "12345",
		Status:            "approved",
		ExternalReference: "PAY-1",
		DateApproved:      &approvedAt,
		StatusDetail:      "accredited",
		PaymentMethodID:   "visa",
		PaymentTypeID:     "credit_card",
	}}

	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if payment.Status != entity.PaymentStatusApproved {
		t.Fatalf("expected approved payment, got %s", payment.Status)
	}
	if payment.ExternalPaymentID == nil || *payment.ExternalPaymentID != "12345" {
		t.Fatalf("expected external payment id recorded, got %v", payment.ExternalPaymentID)
	}
	if payment.PaidAt == nil || !payment.PaidAt.Equal(approvedAt) {
		t.Fatalf("expected paid_at from gateway, got %v", payment.PaidAt)
	}
	if payment.Metadata["mercadopago_status"] != "approved" {
		t.Fatalf("expected provider status in metadata, got %v", payment.Metadata["mercadopago_status"])
	}
	if subscription.Status != entity.SubscriptionStatusActive {
		t.Fatalf("expected subscription activated, got %s", subscription.Status)
	}
}

func TestWebhookRedeliveryIsNoOp(t *testing.T) {
	repo := newTestRepository()
	subscription, payment := seedSubscriptionWithPayment(repo, "PAY-1", entity.PaymentStatusApproved)
	subscription.Status = entity.SubscriptionStatusActive

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "12345",
		Status:            "approved",
		ExternalReference: "PAY-1",
	}}

	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	// Status already matches: nothing is written and the metadata stays empty
	if calls := repo.SubscriptionPayment.(*stubSubscriptionPaymentRepo).updateCalls; calls != 0 {
		t.Fatalf("expected no update on redelivery, got %d calls", calls)
	}
	if payment.Metadata != nil {
		t.Fatalf("expected metadata untouched on redelivery, got %v", payment.Metadata)
	}
}

func TestWebhookSubscriptionPaymentCheckedBeforeOneOff(t *testing.T) {
	repo := newTestRepository()
	_, subPayment := seedSubscriptionWithPayment(repo, "PAY-1", entity.PaymentStatusPending)
	oneOff := seedOneOffPayment(repo, "PAY-1", entity.PaymentStatusPending)

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "777",
		Status:            "approved",
		ExternalReference: "PAY-1",
	}}

	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("777")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if subPayment.Status != entity.PaymentStatusApproved {
		t.Fatalf("expected subscription payment reconciled, got %s", subPayment.Status)
	}
	if oneOff.Status != entity.PaymentStatusPending {
		t.Fatalf("expected one-off payment untouched, got %s", oneOff.Status)
	}
}

func TestWebhookRejectedMapsToCancelledWithoutActivation(t *testing.T) {
	repo := newTestRepository()
	subscription, payment := seedSubscriptionWithPayment(repo, "PAY-1", entity.PaymentStatusPending)

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "12345",
		Status:            "rejected",
		ExternalReference: "PAY-1",
		StatusDetail:      "cc_rejected_insufficient_amount",
	}}

	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if payment.Status != entity.PaymentStatusCancelled {
		t.Fatalf("expected cancelled payment, got %s", payment.Status)
	}
	if subscription.Status != entity.SubscriptionStatusPendingPayment {
		t.Fatalf("subscription must stay pending, got %s", subscription.Status)
	}
}

func TestWebhookGatewayFailureAcknowledged(t *testing.T) {
	repo := newTestRepository()
	seedSubscriptionWithPayment(repo, "PAY-1", entity.PaymentStatusPending)

	gw := &stubGateway{err: errors.New("gateway timeout")}
	service := NewPaymentService(repo, gw, zap.NewNop())

	// Swallowed so the gateway does not retry forever
	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err != nil {
		t.Fatalf("expected fetch failure swallowed, got %v", err)
	}
}

func TestWebhookUnknownReferenceAcknowledged(t *testing.T) {
	repo := newTestRepository()

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "999",
		Status:            "approved",
		ExternalReference: "PAY-UNKNOWN",
	}}
	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("999")); err != nil {
		t.Fatalf("expected unknown reference swallowed, got %v", err)
	}
}

// Past the idempotency gate a write failure must surface so the gateway
// redelivers the webhook.
func TestWebhookUpdateFailurePropagates(t *testing.T) {
	repo := newTestRepository()
	seedOneOffPayment(repo, "PAY-1", entity.PaymentStatusPending)
	repo.Payment = &failingUpdatePaymentRepo{stubPaymentRepo: repo.Payment.(*stubPaymentRepo)}

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "12345",
		Status:            "approved",
		ExternalReference: "PAY-1",
	}}
	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err == nil {
		t.Fatal("expected update failure to propagate")
	}
}

// Lookups succeed, Update fails.
type failingUpdatePaymentRepo struct {
	*stubPaymentRepo
}

func (f *failingUpdatePaymentRepo) Update(_ context.Context, _ *entity.Payment) error {
	return errors.New("connection reset")
}

func TestWebhookNonPaymentTypesSkipGateway(t *testing.T) {
	repo := newTestRepository()
	gw := &stubGateway{err: errors.New("must not be called")}
	service := NewPaymentService(repo, gw, zap.NewNop())

	for _, typ := range []string{"subscription", "preapproval", "plan", "invoice"} {
		envelope := &request.WebhookEnvelope{
			Type:   typ,
			Data:   request.WebhookData{ID: request.WebhookID("1")},
			Action: "updated",
		}
		if err := service.HandleWebhook(context.Background(), envelope); err != nil {
			t.Fatalf("type %q: expected ack, got %v", typ, err)
		}
	}

	if gw.fetches != 0 {
		t.Fatalf("expected no gateway fetches, got %d", gw.fetches)
	}
}

func TestWebhookMetadataMergePreservesExistingKeys(t *testing.T) {
	repo := newTestRepository()
	payment := seedOneOffPayment(repo, "PAY-1", entity.PaymentStatusPending)
	payment.Metadata = map[string]any{"checkout_channel": "mobile"}

	gw := &stubGateway{info: &gateway.PaymentInfo{
		ID:                "12345",
		Status:            "approved",
		ExternalReference: "PAY-1",
		StatusDetail:      "accredited",
		PaymentMethodID:   "pix",
		PaymentTypeID:     "bank_transfer",
	}}
	service := NewPaymentService(repo, gw, zap.NewNop())

	if err := service.HandleWebhook(context.Background(), paymentEnvelope("12345")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if payment.Metadata["checkout_channel"] != "mobile" {
		t.Fatalf("expected pre-existing metadata preserved, got %v", payment.Metadata)
	}
	if payment.Metadata["payment_method_id"] != "pix" {
		t.Fatalf("expected webhook fields merged, got %v", payment.Metadata)
	}
	if payment.Metadata["last_webhook_action"] != "payment.updated" {
		t.Fatalf("expected webhook action recorded, got %v", payment.Metadata["last_webhook_action"])
	}
}

func TestCreatePaymentStartsPendingWithReference(t *testing.T) {
	repo := newTestRepository()
	gymID := uuid.New()
	repo.Gym.(*stubGymRepo).gyms[gymID] = &entity.Gym{
		Base:     entity.Base{ID: gymID},
		OwnerID:  uuid.New(),
		Name:     "Downtown Gym",
		IsActive: true,
	}

	service := NewPaymentService(repo, &stubGateway{}, zap.NewNop())

	resp, err := service.CreatePayment(context.Background(), uuid.New().String(), &request.CreatePaymentRequest{
		GymID:  gymID.String(),
		Amount: 30.00,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if resp.Status != entity.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", resp.Status)
	}
	if resp.ExternalReference == "" {
		t.Fatal("expected an external reference")
	}
}
