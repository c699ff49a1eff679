package repository

import (
	"context"
	"fmt"

	"gym-booking/internal/data/entity"
	"gym-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	FindActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error)
	FindLatestByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error)
	UpdateStatus(ctx context.Context, subscriptionID uuid.UUID, status entity.SubscriptionStatus) error
}

type subscriptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubscriptionRepository(db database.PgxIface, log *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscription")),
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, owner_id, gym_id, plan_name, price, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		subscription.ID,
		subscription.OwnerID,
		subscription.GymID,
		subscription.PlanName,
		subscription.Price,
		subscription.Status,
		subscription.ExpiresAt,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create subscription",
			zap.Error(err),
			zap.String("owner_id", subscription.OwnerID.String()),
			zap.String("plan_name", subscription.PlanName),
		)
		return fmt.Errorf("create subscription for owner %s: %w", subscription.OwnerID.String(), err)
	}

	return nil
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT id, owner_id, gym_id, plan_name, price, status, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *subscriptionRepository) FindActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT id, owner_id, gym_id, plan_name, price, status, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1 AND status = 'active'
		LIMIT 1
	`

	return r.scanOne(ctx, query, ownerID)
}

func (r *subscriptionRepository) FindLatestByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT id, owner_id, gym_id, plan_name, price, status, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(ctx, query, ownerID)
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, subscriptionID uuid.UUID, status entity.SubscriptionStatus) error {
	query := `UPDATE subscriptions SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, subscriptionID, status)
	if err != nil {
		r.log.Error("Failed to update subscription status",
			zap.Error(err),
			zap.String("subscription_id", subscriptionID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update subscription %s status to %s: %w",
			subscriptionID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", subscriptionID.String())
	}

	return nil
}

func (r *subscriptionRepository) scanOne(ctx context.Context, query string, arg any) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&subscription.ID,
		&subscription.OwnerID,
		&subscription.GymID,
		&subscription.PlanName,
		&subscription.Price,
		&subscription.Status,
		&subscription.ExpiresAt,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscription", zap.Error(err))
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	return &subscription, nil
}
