package usecase

import (
	"context"
	"fmt"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/dto/request"
	"gym-booking/internal/dto/response"
	"gym-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID string, req *request.CreateSubscriptionRequest) (*response.SubscriptionCheckoutResponse, error)
	GetMySubscription(ctx context.Context, userID string) (*response.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, userID string, subscriptionID string) error
}

type subscriptionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSubscriptionService(repo *repository.Repository, log *zap.Logger) SubscriptionService {
	return &subscriptionService{
		repo: repo,
		log:  log.With(zap.String("service", "subscription")),
	}
}

// CreateSubscription opens a pending subscription plus its pending payment
// record. The returned external reference is what the gateway echoes back in
// webhooks; the subscription only activates once that payment is approved.
func (s *subscriptionService) CreateSubscription(ctx context.Context, userID string, req *request.CreateSubscriptionRequest) (*response.SubscriptionCheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create subscription validation failed", zap.Any("errors", errs))
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

	// One active subscription per owner; enforced by query, not constraint
	active, err := s.repo.Subscription.FindActiveByOwnerID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("check active subscription: %w", err)
	}
	if active != nil {
		return nil, fmt.Errorf("already has an active subscription")
	}

	now := time.Now()
	subscription := &entity.Subscription{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:  userUUID,
		GymID:    gymID,
		PlanName: req.PlanName,
		Price:    req.Price,
		Status:   entity.SubscriptionStatusPendingPayment,
	}

	if err := s.repo.Subscription.Create(ctx, subscription); err != nil {
		s.log.Error("Failed to create subscription",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	payment := &entity.SubscriptionPayment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubscriptionID:    subscription.ID,
		OwnerID:           userUUID,
		Amount:            req.Price,
		Status:            entity.PaymentStatusPending,
		ExternalReference: utils.GenerateExternalReference(),
	}

	if err := s.repo.SubscriptionPayment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create subscription payment",
			zap.Error(err),
			zap.String("subscription_id", subscription.ID.String()),
		)
		return nil, fmt.Errorf("create subscription payment: %w", err)
	}

	s.log.Info("Subscription created",
		zap.String("subscription_id", subscription.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("external_reference", payment.ExternalReference),
		zap.String("user_id", userID),
	)

	return &response.SubscriptionCheckoutResponse{
		Subscription: response.SubscriptionToResponse(subscription),
		Payment:      response.SubscriptionPaymentToResponse(payment),
	}, nil
}

func (s *subscriptionService) GetMySubscription(ctx context.Context, userID string) (*response.SubscriptionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	subscription, err := s.repo.Subscription.FindLatestByOwnerID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if subscription == nil {
		return nil, fmt.Errorf("subscription not found")
	}

	resp := response.SubscriptionToResponse(subscription)
	return &resp, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, userID string, subscriptionID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(subscriptionID)
	if err != nil {
		return fmt.Errorf("invalid subscription ID format %s: %w", subscriptionID, err)
	}

	subscription, err := s.repo.Subscription.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load subscription: %w", err)
	}
	if subscription == nil {
		return fmt.Errorf("subscription %s not found", subscriptionID)
	}

	if subscription.OwnerID != userUUID {
		return fmt.Errorf("forbidden: subscription belongs to another user")
	}

	if subscription.Status == entity.SubscriptionStatusCancelled {
		return fmt.Errorf("subscription already cancelled")
	}

	if err := s.repo.Subscription.UpdateStatus(ctx, id, entity.SubscriptionStatusCancelled); err != nil {
		s.log.Error("Failed to cancel subscription",
			zap.Error(err),
			zap.String("subscription_id", subscriptionID),
		)
		return fmt.Errorf("cancel subscription: %w", err)
	}

	s.log.Info("Subscription cancelled", zap.String("subscription_id", subscriptionID))

	return nil
}
