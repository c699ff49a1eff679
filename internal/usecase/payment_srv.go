package usecase

import (
	"context"
	"fmt"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/dto/request"
	"gym-booking/internal/dto/response"
	"gym-booking/pkg/gateway"
	"gym-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// Webhook reconciliation
	HandleWebhook(ctx context.Context, envelope *request.WebhookEnvelope) error

	// One-off payments
	CreatePayment(ctx context.Context, userID string, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	ListPaymentsForOwner(ctx context.Context, ownerID string, req *request.PaginatedRequest) ([]response.PaymentResponse, error)
}

type paymentService struct {
	repo    *repository.Repository
	gateway gateway.PaymentGateway
	log     *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw gateway.PaymentGateway, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		log:     log.With(zap.String("service", "payment")),
	}
}

// HandleWebhook dispatches a gateway notification by type. Only "payment"
// notifications change state; subscription/preapproval notifications are
// acknowledged without processing so the gateway stops redelivering them.
func (s *paymentService) HandleWebhook(ctx context.Context, envelope *request.WebhookEnvelope) error {
	switch envelope.Type {
	case "payment":
		return s.processPaymentWebhook(ctx, envelope.Data.ID.String(), envelope.Action)

	case "subscription", "preapproval":
		s.log.Info("Webhook acknowledged without processing",
			zap.String("type", envelope.Type),
			zap.String("action", envelope.Action),
			zap.String("external_payment_id", envelope.Data.ID.String()),
		)
		return nil

	default:
		s.log.Info("Ignoring unhandled webhook type",
			zap.String("type", envelope.Type),
			zap.String("action", envelope.Action),
		)
		return nil
	}
}

// processPaymentWebhook reconciles one payment notification. Gateway and
// lookup failures are logged and swallowed: the record may not belong to this
// system, and failing the response would make the gateway retry forever.
// Errors past the idempotency gate propagate so the gateway does retry.
func (s *paymentService) processPaymentWebhook(ctx context.Context, externalPaymentID, action string) error {
	info, err := s.gateway.FetchPayment(ctx, externalPaymentID)
	if err != nil {
		s.log.Warn("Gateway payment fetch failed, webhook acknowledged",
			zap.Error(err),
			zap.String("external_payment_id", externalPaymentID),
		)
		return nil
	}

	if info.ExternalReference == "" {
		s.log.Warn("Gateway payment carries no external reference",
			zap.String("external_payment_id", externalPaymentID),
			zap.String("provider_status", info.Status),
		)
		return nil
	}

	mapped := entity.MapProviderStatus(info.Status)

	// Subscription payments are checked first, then one-off payments
	subPayment, err := s.repo.SubscriptionPayment.FindByExternalReference(ctx, info.ExternalReference)
	if err != nil {
		s.log.Warn("Subscription payment lookup failed, webhook acknowledged",
			zap.Error(err),
			zap.String("external_reference", info.ExternalReference),
		)
		return nil
	}
	if subPayment != nil {
		return s.applySubscriptionPayment(ctx, subPayment, info, mapped, action)
	}

	payment, err := s.repo.Payment.FindByExternalReference(ctx, info.ExternalReference)
	if err != nil {
		s.log.Warn("Payment lookup failed, webhook acknowledged",
			zap.Error(err),
			zap.String("external_reference", info.ExternalReference),
		)
		return nil
	}
	if payment == nil {
		s.log.Warn("Webhook references unknown payment record",
			zap.String("external_reference", info.ExternalReference),
			zap.String("external_payment_id", externalPaymentID),
		)
		return nil
	}

	return s.applyPayment(ctx, payment, info, mapped, action)
}

func (s *paymentService) applySubscriptionPayment(ctx context.Context, payment *entity.SubscriptionPayment, info *gateway.PaymentInfo, mapped entity.PaymentStatus, action string) error {
	// Idempotency gate: replayed webhooks must be no-ops
	if payment.Status == mapped {
		s.log.Info("Subscription payment status unchanged",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", string(mapped)),
		)
		return nil
	}

	previous := payment.Status

	payment.Status = mapped
	externalID := info.ID
	payment.ExternalPaymentID = &externalID
	if info.DateApproved != nil {
		payment.PaidAt = info.DateApproved
	}
	payment.Metadata = mergeWebhookMetadata(payment.Metadata, info, action)
	payment.UpdatedAt = time.Now()

	if err := s.repo.SubscriptionPayment.Update(ctx, payment); err != nil {
		return fmt.Errorf("update subscription payment %s: %w", payment.ID.String(), err)
	}

	s.log.Info("Subscription payment reconciled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("previous_status", string(previous)),
		zap.String("status", string(mapped)),
	)

	// Approval edge: the only path out of pending_payment
	if previous != entity.PaymentStatusApproved && mapped == entity.PaymentStatusApproved {
		if err := s.repo.Subscription.UpdateStatus(ctx, payment.SubscriptionID, entity.SubscriptionStatusActive); err != nil {
			return fmt.Errorf("activate subscription %s: %w", payment.SubscriptionID.String(), err)
		}

		s.log.Info("Subscription activated",
			zap.String("subscription_id", payment.SubscriptionID.String()),
			zap.String("payment_id", payment.ID.String()),
		)
	}

	return nil
}

func (s *paymentService) applyPayment(ctx context.Context, payment *entity.Payment, info *gateway.PaymentInfo, mapped entity.PaymentStatus, action string) error {
	if payment.Status == mapped {
		s.log.Info("Payment status unchanged",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", string(mapped)),
		)
		return nil
	}

	previous := payment.Status

	payment.Status = mapped
	externalID := info.ID
	payment.ExternalPaymentID = &externalID
	if info.DateApproved != nil {
		payment.PaidAt = info.DateApproved
	}
	payment.Metadata = mergeWebhookMetadata(payment.Metadata, info, action)
	payment.UpdatedAt = time.Now()

	if err := s.repo.Payment.Update(ctx, payment); err != nil {
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), err)
	}

	s.log.Info("Payment reconciled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("previous_status", string(previous)),
		zap.String("status", string(mapped)),
	)

	if previous != entity.PaymentStatusApproved && mapped == entity.PaymentStatusApproved {
		s.activateMembership(payment)
	}

	return nil
}

// activateMembership is the extension point for the one-off approval edge.
// Membership provisioning is not wired yet; approval only logs.
func (s *paymentService) activateMembership(payment *entity.Payment) {
	s.log.Info("Payment approved, membership activation pending implementation",
		zap.String("payment_id", payment.ID.String()),
		zap.String("user_id", payment.UserID.String()),
		zap.String("gym_id", payment.GymID.String()),
	)
}

// mergeWebhookMetadata folds webhook diagnostic fields into the existing
// metadata bag. Keys are overwritten in place; the bag itself is never
// replaced, so earlier diagnostics survive later webhooks.
func mergeWebhookMetadata(metadata map[string]any, info *gateway.PaymentInfo, action string) map[string]any {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	metadata["mercadopago_status"] = info.Status
	metadata["status_detail"] = info.StatusDetail
	metadata["payment_method_id"] = info.PaymentMethodID
	metadata["payment_type_id"] = info.PaymentTypeID
	metadata["last_webhook_action"] = action
	metadata["last_webhook_at"] = time.Now().UTC().Format(time.RFC3339)

	return metadata
}

// ==================== ONE-OFF PAYMENTS ====================

func (s *paymentService) CreatePayment(ctx context.Context, userID string, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	gymID, err := uuid.Parse(req.GymID)
	if err != nil {
		return nil, fmt.Errorf("invalid gym ID format %s: %w", req.GymID, err)
	}

	gym, err := s.repo.Gym.FindByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("load gym: %w", err)
	}
	if gym == nil || !gym.IsActive {
		return nil, fmt.Errorf("gym %s not found", req.GymID)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:            userUUID,
		GymID:             gymID,
		Amount:            req.Amount,
		Status:            entity.PaymentStatusPending,
		ExternalReference: utils.GenerateExternalReference(),
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("gym_id", req.GymID),
		)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info("Payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("external_reference", payment.ExternalReference),
		zap.Float64("amount", req.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// ListPaymentsForOwner lists payments across all gyms the owner operates
func (s *paymentService) ListPaymentsForOwner(ctx context.Context, ownerID string, req *request.PaginatedRequest) ([]response.PaymentResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", ownerID, err)
	}

	gyms, err := s.repo.Gym.FindByOwnerID(ctx, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("load owner gyms: %w", err)
	}
	if len(gyms) == 0 {
		return []response.PaymentResponse{}, nil
	}

	gymIDs := make([]uuid.UUID, len(gyms))
	for i, gym := range gyms {
		gymIDs[i] = gym.ID
	}

	payments, err := s.repo.Payment.FindByGymIDs(ctx, gymIDs, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list gym payments",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("list gym payments: %w", err)
	}

	paymentResponses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		paymentResponses[i] = response.PaymentToResponse(payment)
	}

	return paymentResponses, nil
}
