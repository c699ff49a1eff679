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

type GymRepository interface {
	Create(ctx context.Context, gym *entity.Gym) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Gym, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Gym, error)
	Count(ctx context.Context) (int64, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Gym, error)
	Update(ctx context.Context, gym *entity.Gym) error
}

type gymRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGymRepository(db database.PgxIface, log *zap.Logger) GymRepository {
	return &gymRepository{
		db:  db,
		log: log.With(zap.String("repository", "gym")),
	}
}

func (r *gymRepository) Create(ctx context.Context, gym *entity.Gym) error {
	query := `
		INSERT INTO gyms (id, owner_id, name, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		gym.ID,
		gym.OwnerID,
		gym.Name,
		gym.Address,
		gym.Phone,
		gym.IsActive,
		gym.CreatedAt,
		gym.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create gym",
			zap.Error(err),
			zap.String("owner_id", gym.OwnerID.String()),
			zap.String("name", gym.Name),
		)
		return fmt.Errorf("create gym %s: %w", gym.Name, err)
	}

	return nil
}

func (r *gymRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Gym, error) {
	query := `
		SELECT id, owner_id, name, address, phone, is_active, created_at, updated_at
		FROM gyms
		WHERE id = $1
	`

	var gym entity.Gym
	err := r.db.QueryRow(ctx, query, id).Scan(
		&gym.ID,
		&gym.OwnerID,
		&gym.Name,
		&gym.Address,
		&gym.Phone,
		&gym.IsActive,
		&gym.CreatedAt,
		&gym.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find gym by ID",
			zap.Error(err),
			zap.String("gym_id", id.String()),
		)
		return nil, fmt.Errorf("find gym by ID %s: %w", id.String(), err)
	}

	return &gym, nil
}

func (r *gymRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Gym, error) {
	query := `
		SELECT id, owner_id, name, address, phone, is_active, created_at, updated_at
		FROM gyms
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find gyms",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find gyms: %w", err)
	}
	defer rows.Close()

	var gyms []*entity.Gym
	for rows.Next() {
		var gym entity.Gym
		err := rows.Scan(
			&gym.ID,
			&gym.OwnerID,
			&gym.Name,
			&gym.Address,
			&gym.Phone,
			&gym.IsActive,
			&gym.CreatedAt,
			&gym.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan gym row", zap.Error(err))
			return nil, fmt.Errorf("scan gym row: %w", err)
		}
		gyms = append(gyms, &gym)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate gym rows: %w", err)
	}

	return gyms, nil
}

func (r *gymRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM gyms WHERE is_active = true`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count gyms", zap.Error(err))
		return 0, fmt.Errorf("count gyms: %w", err)
	}

	return count, nil
}

func (r *gymRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Gym, error) {
	query := `
		SELECT id, owner_id, name, address, phone, is_active, created_at, updated_at
		FROM gyms
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find gyms by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find gyms by owner ID %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var gyms []*entity.Gym
	for rows.Next() {
		var gym entity.Gym
		err := rows.Scan(
			&gym.ID,
			&gym.OwnerID,
			&gym.Name,
			&gym.Address,
			&gym.Phone,
			&gym.IsActive,
			&gym.CreatedAt,
			&gym.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan gym row", zap.Error(err))
			return nil, fmt.Errorf("scan gym row: %w", err)
		}
		gyms = append(gyms, &gym)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate gym rows: %w", err)
	}

	return gyms, nil
}

func (r *gymRepository) Update(ctx context.Context, gym *entity.Gym) error {
	query := `
		UPDATE gyms
		SET name = $2, address = $3, phone = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		gym.ID,
		gym.Name,
		gym.Address,
		gym.Phone,
		gym.IsActive,
		gym.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update gym",
			zap.Error(err),
			zap.String("gym_id", gym.ID.String()),
		)
		return fmt.Errorf("update gym %s: %w", gym.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gym %s not found", gym.ID.String())
	}

	return nil
}
