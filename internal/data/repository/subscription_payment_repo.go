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

type SubscriptionPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SubscriptionPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPayment, error)
	FindByExternalReference(ctx context.Context, externalRef string) (*entity.SubscriptionPayment, error)
	Update(ctx context.Context, payment *entity.SubscriptionPayment) error
}

type subscriptionPaymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubscriptionPaymentRepository(db database.PgxIface, log *zap.Logger) SubscriptionPaymentRepository {
	return &subscriptionPaymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscription_payment")),
	}
}

func (r *subscriptionPaymentRepository) Create(ctx context.Context, payment *entity.SubscriptionPayment) error {
	query := `
		INSERT INTO subscription_payments (id, subscription_id, owner_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.SubscriptionID,
		payment.OwnerID,
		payment.Amount,
		payment.Status,
		payment.ExternalReference,
		payment.ExternalPaymentID,
		payment.PaidAt,
		payment.Metadata,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create subscription payment",
			zap.Error(err),
			zap.String("subscription_id", payment.SubscriptionID.String()),
			zap.String("external_reference", payment.ExternalReference),
		)
		return fmt.Errorf("create subscription payment %s: %w", payment.ExternalReference, err)
	}

	return nil
}

func (r *subscriptionPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPayment, error) {
	query := `
		SELECT id, subscription_id, owner_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at
		FROM subscription_payments
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *subscriptionPaymentRepository) FindByExternalReference(ctx context.Context, externalRef string) (*entity.SubscriptionPayment, error) {
	query := `
		SELECT id, subscription_id, owner_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at
		FROM subscription_payments
		WHERE external_reference = $1
	`

	return r.scanOne(ctx, query, externalRef)
}

func (r *subscriptionPaymentRepository) Update(ctx context.Context, payment *entity.SubscriptionPayment) error {
	query := `
		UPDATE subscription_payments
		SET status = $2, external_payment_id = $3, paid_at = $4, metadata = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.Status,
		payment.ExternalPaymentID,
		payment.PaidAt,
		payment.Metadata,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update subscription payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update subscription payment %s: %w", payment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription payment %s not found", payment.ID.String())
	}

	return nil
}

func (r *subscriptionPaymentRepository) scanOne(ctx context.Context, query string, arg any) (*entity.SubscriptionPayment, error) {
	var payment entity.SubscriptionPayment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&payment.ID,
		&payment.SubscriptionID,
		&payment.OwnerID,
		&payment.Amount,
		&payment.Status,
		&payment.ExternalReference,
		&payment.ExternalPaymentID,
		&payment.PaidAt,
		&payment.Metadata,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscription payment", zap.Error(err))
		return nil, fmt.Errorf("find subscription payment: %w", err)
	}

	return &payment, nil
}
