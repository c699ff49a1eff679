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

type ClassRepository interface {
	Create(ctx context.Context, class *entity.ClassSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error)
	FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*entity.ClassSession, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type classRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClassRepository(db database.PgxIface, log *zap.Logger) ClassRepository {
	return &classRepository{
		db:  db,
		log: log.With(zap.String("repository", "class")),
	}
}

func (r *classRepository) Create(ctx context.Context, class *entity.ClassSession) error {
	query := `
		INSERT INTO class_sessions (id, gym_id, name, starts_at, capacity, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		class.ID,
		class.GymID,
		class.Name,
		class.StartsAt,
		class.Capacity,
		class.Price,
		class.IsActive,
		class.CreatedAt,
		class.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create class session",
			zap.Error(err),
			zap.String("gym_id", class.GymID.String()),
			zap.String("name", class.Name),
		)
		return fmt.Errorf("create class session %s: %w", class.Name, err)
	}

	return nil
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	query := `
		SELECT id, gym_id, name, starts_at, capacity, price, is_active, created_at, updated_at
		FROM class_sessions
		WHERE id = $1
	`

	var class entity.ClassSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.GymID,
		&class.Name,
		&class.StartsAt,
		&class.Capacity,
		&class.Price,
		&class.IsActive,
		&class.CreatedAt,
		&class.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find class session by ID",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return nil, fmt.Errorf("find class session by ID %s: %w", id.String(), err)
	}

	return &class, nil
}

func (r *classRepository) FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*entity.ClassSession, error) {
	query := `
		SELECT id, gym_id, name, starts_at, capacity, price, is_active, created_at, updated_at
		FROM class_sessions
		WHERE gym_id = $1 AND is_active = true
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, gymID)
	if err != nil {
		r.log.Error("Failed to find class sessions by gym ID",
			zap.Error(err),
			zap.String("gym_id", gymID.String()),
		)
		return nil, fmt.Errorf("find class sessions by gym ID %s: %w", gymID.String(), err)
	}
	defer rows.Close()

	var classes []*entity.ClassSession
	for rows.Next() {
		var class entity.ClassSession
		err := rows.Scan(
			&class.ID,
			&class.GymID,
			&class.Name,
			&class.StartsAt,
			&class.Capacity,
			&class.Price,
			&class.IsActive,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan class session row", zap.Error(err))
			return nil, fmt.Errorf("scan class session row: %w", err)
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate class session rows: %w", err)
	}

	return classes, nil
}

func (r *classRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE class_sessions SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate class session",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return fmt.Errorf("deactivate class session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("class session %s not found", id.String())
	}

	return nil
}
