package usecase

import (
	"context"
	"fmt"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/dto/request"
	"gym-booking/internal/dto/response"
	"gym-booking/pkg/cache"
	"gym-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassService interface {
	CreateClass(ctx context.Context, userID, role string, req *request.CreateClassRequest) (*response.ClassResponse, error)
	GetClass(ctx context.Context, classID string) (*response.ClassResponse, error)
	ListClassesByGym(ctx context.Context, gymID string) ([]response.ClassResponse, error)
	DeactivateClass(ctx context.Context, userID, role, classID string) error
}

type classService struct {
	repo         *repository.Repository
	availability *cache.AvailabilityCache
	log          *zap.Logger
}

func NewClassService(repo *repository.Repository, availability *cache.AvailabilityCache, log *zap.Logger) ClassService {
	return &classService{
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "class")),
	}
}

func (s *classService) CreateClass(ctx context.Context, userID, role string, req *request.CreateClassRequest) (*response.ClassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create class validation failed", zap.Any("errors", errs))
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

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at format, expected RFC3339: %w", err)
	}

	gym, err := s.repo.Gym.FindByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("load gym: %w", err)
	}
	if gym == nil || !gym.IsActive {
		return nil, fmt.Errorf("gym %s not found", req.GymID)
	}

	if role != entity.RoleAdmin && gym.OwnerID != userUUID {
		return nil, fmt.Errorf("forbidden: gym belongs to another owner")
	}

	now := time.Now()
	class := &entity.ClassSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GymID:    gymID,
		Name:     req.Name,
		StartsAt: startsAt,
		Capacity: req.Capacity,
		Price:    req.Price,
		IsActive: true,
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.log.Error("Failed to create class session",
			zap.Error(err),
			zap.String("gym_id", req.GymID),
		)
		return nil, fmt.Errorf("create class session: %w", err)
	}

	s.log.Info("Class session created",
		zap.String("class_id", class.ID.String()),
		zap.String("gym_id", req.GymID),
		zap.String("name", req.Name),
		zap.Int("capacity", req.Capacity),
	)

	resp := response.ClassToResponse(class, 0)
	return &resp, nil
}

func (s *classService) GetClass(ctx context.Context, classID string) (*response.ClassResponse, error) {
	id, err := uuid.Parse(classID)
	if err != nil {
		return nil, fmt.Errorf("invalid class ID format %s: %w", classID, err)
	}

	class, err := s.repo.Class.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load class session: %w", err)
	}
	if class == nil {
		return nil, fmt.Errorf("class %s not found", classID)
	}

	confirmedCount, err := s.confirmedCount(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ClassToResponse(class, confirmedCount)
	return &resp, nil
}

func (s *classService) ListClassesByGym(ctx context.Context, gymID string) ([]response.ClassResponse, error) {
	id, err := uuid.Parse(gymID)
	if err != nil {
		return nil, fmt.Errorf("invalid gym ID format %s: %w", gymID, err)
	}

	gym, err := s.repo.Gym.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load gym: %w", err)
	}
	if gym == nil {
		return nil, fmt.Errorf("gym %s not found", gymID)
	}

	classes, err := s.repo.Class.FindByGymID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list class sessions",
			zap.Error(err),
			zap.String("gym_id", gymID),
		)
		return nil, fmt.Errorf("list class sessions: %w", err)
	}

	classResponses := make([]response.ClassResponse, len(classes))
	for i, class := range classes {
		confirmedCount, err := s.confirmedCount(ctx, class.ID)
		if err != nil {
			return nil, err
		}
		classResponses[i] = response.ClassToResponse(class, confirmedCount)
	}

	return classResponses, nil
}

func (s *classService) DeactivateClass(ctx context.Context, userID, role, classID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(classID)
	if err != nil {
		return fmt.Errorf("invalid class ID format %s: %w", classID, err)
	}

	class, err := s.repo.Class.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load class session: %w", err)
	}
	if class == nil {
		return fmt.Errorf("class %s not found", classID)
	}

	if role != entity.RoleAdmin {
		gym, err := s.repo.Gym.FindByID(ctx, class.GymID)
		if err != nil {
			return fmt.Errorf("load gym: %w", err)
		}
		if gym == nil || gym.OwnerID != userUUID {
			return fmt.Errorf("forbidden: class belongs to another gym")
		}
	}

	if err := s.repo.Class.Deactivate(ctx, id); err != nil {
		s.log.Error("Failed to deactivate class session",
			zap.Error(err),
			zap.String("class_id", classID),
		)
		return fmt.Errorf("deactivate class session: %w", err)
	}

	s.availability.Invalidate(ctx, id)

	s.log.Info("Class session deactivated", zap.String("class_id", classID))

	return nil
}

// confirmedCount reads the confirmed-seat count through the availability
// cache, falling back to the database on a miss
func (s *classService) confirmedCount(ctx context.Context, classID uuid.UUID) (int64, error) {
	if count, ok := s.availability.GetConfirmedCount(ctx, classID); ok {
		return count, nil
	}

	count, err := s.repo.Reservation.CountConfirmedByClassID(ctx, classID)
	if err != nil {
		return 0, fmt.Errorf("count confirmed reservations: %w", err)
	}

	s.availability.SetConfirmedCount(ctx, classID, count)

	return count, nil
}
