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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByExternalReference(ctx context.Context, externalRef string) (*entity.Payment, error)
	FindByGymIDs(ctx context.Context, gymIDs []uuid.UUID, limit, offset int) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, gym_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.UserID,
		payment.GymID,
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
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("user_id", payment.UserID.String()),
			zap.String("external_reference", payment.ExternalReference),
		)
		return fmt.Errorf("create payment %s: %w", payment.ExternalReference, err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, user_id, gym_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *paymentRepository) FindByExternalReference(ctx context.Context, externalRef string) (*entity.Payment, error) {
	query := `
		SELECT id, user_id, gym_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at
		FROM payments
		WHERE external_reference = $1
	`

	return r.scanOne(ctx, query, externalRef)
}

// FindByGymIDs lists payments for a set of gyms with a parameterized ANY
// predicate, never by interpolating IDs into the query text.
func (r *paymentRepository) FindByGymIDs(ctx context.Context, gymIDs []uuid.UUID, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, user_id, gym_id, amount, status, external_reference, external_payment_id, paid_at, metadata, created_at, updated_at
		FROM payments
		WHERE gym_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, gymIDs, limit, offset)
	if err != nil {
		r.log.Error("Failed to find payments by gym IDs",
			zap.Error(err),
			zap.Int("gym_count", len(gymIDs)),
		)
		return nil, fmt.Errorf("find payments by gym IDs: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.GymID,
			&payment.Amount,
			&payment.Status,
			&payment.ExternalReference,
			&payment.ExternalPaymentID,
			&payment.PaidAt,
			&payment.Metadata,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
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
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", payment.ID.String())
	}

	return nil
}

func (r *paymentRepository) scanOne(ctx context.Context, query string, arg any) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.GymID,
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
		r.log.Error("Failed to find payment", zap.Error(err))
		return nil, fmt.Errorf("find payment: %w", err)
	}

	return &payment, nil
}
