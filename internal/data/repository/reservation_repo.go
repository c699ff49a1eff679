package repository

import (
	"context"
	"fmt"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Admission control queries
	FindActiveByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*entity.Reservation, error)
	CountConfirmedByClassID(ctx context.Context, classID uuid.UUID) (int64, error)
	FindOldestWaitlisted(ctx context.Context, classID uuid.UUID) (*entity.Reservation, error)
	FindByClassID(ctx context.Context, classID uuid.UUID) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error
	Cancel(ctx context.Context, reservationID uuid.UUID, cancelledAt time.Time) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.ClassID,
		reservation.UserID,
		reservation.Status,
		reservation.Notes,
		reservation.BookedAt,
		reservation.CancelledAt,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("class_id", reservation.ClassID.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
		return fmt.Errorf("create reservation for class %s: %w", reservation.ClassID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.ClassID,
		&reservation.UserID,
		&reservation.Status,
		&reservation.Notes,
		&reservation.BookedAt,
		&reservation.CancelledAt,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY booked_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// FindActiveByUserAndClass returns the user's non-cancelled reservation for a
// class, if any. Backs the one-reservation-per-class rule.
func (r *reservationRepository) FindActiveByUserAndClass(ctx context.Context, userID, classID uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at
		FROM reservations
		WHERE user_id = $1 AND class_id = $2 AND status != 'cancelled'
		LIMIT 1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, userID, classID).Scan(
		&reservation.ID,
		&reservation.ClassID,
		&reservation.UserID,
		&reservation.Status,
		&reservation.Notes,
		&reservation.BookedAt,
		&reservation.CancelledAt,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active reservation",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("class_id", classID.String()),
		)
		return nil, fmt.Errorf("find active reservation for user %s class %s: %w",
			userID.String(), classID.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) CountConfirmedByClassID(ctx context.Context, classID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE class_id = $1 AND status = 'confirmed'`

	var count int64
	err := r.db.QueryRow(ctx, query, classID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count confirmed reservations",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
		return 0, fmt.Errorf("count confirmed reservations for class %s: %w", classID.String(), err)
	}

	return count, nil
}

// FindOldestWaitlisted returns the earliest-booked waitlisted reservation
// for a class, the next in line for promotion.
func (r *reservationRepository) FindOldestWaitlisted(ctx context.Context, classID uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at
		FROM reservations
		WHERE class_id = $1 AND status = 'waitlisted'
		ORDER BY booked_at ASC
		LIMIT 1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, classID).Scan(
		&reservation.ID,
		&reservation.ClassID,
		&reservation.UserID,
		&reservation.Status,
		&reservation.Notes,
		&reservation.BookedAt,
		&reservation.CancelledAt,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find oldest waitlisted reservation",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
		return nil, fmt.Errorf("find oldest waitlisted reservation for class %s: %w", classID.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByClassID(ctx context.Context, classID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, class_id, user_id, status, notes, booked_at, cancelled_at, created_at, updated_at
		FROM reservations
		WHERE class_id = $1
		ORDER BY booked_at
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		r.log.Error("Failed to find reservations by class ID",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
		return nil, fmt.Errorf("find reservations by class ID %s: %w", classID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, reservationID, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w",
			reservationID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservationID.String())
	}

	return nil
}

func (r *reservationRepository) Cancel(ctx context.Context, reservationID uuid.UUID, cancelledAt time.Time) error {
	query := `UPDATE reservations SET status = 'cancelled', cancelled_at = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, reservationID, cancelledAt)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("cancel reservation %s: %w", reservationID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservationID.String())
	}

	return nil
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.ClassID,
			&reservation.UserID,
			&reservation.Status,
			&reservation.Notes,
			&reservation.BookedAt,
			&reservation.CancelledAt,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}
