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

type GymService interface {
	CreateGym(ctx context.Context, ownerID string, req *request.CreateGymRequest) (*response.GymResponse, error)
	GetGym(ctx context.Context, gymID string) (*response.GymResponse, error)
	ListGyms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GymResponse], error)
	UpdateGym(ctx context.Context, userID, role, gymID string, req *request.UpdateGymRequest) (*response.GymResponse, error)
}

type gymService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGymService(repo *repository.Repository, log *zap.Logger) GymService {
	return &gymService{
		repo: repo,
		log:  log.With(zap.String("service", "gym")),
	}
}

func (s *gymService) CreateGym(ctx context.Context, ownerID string, req *request.CreateGymRequest) (*response.GymResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create gym validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", ownerID, err)
	}

	now := time.Now()
	gym := &entity.Gym{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:  ownerUUID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.repo.Gym.Create(ctx, gym); err != nil {
		s.log.Error("Failed to create gym",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("create gym: %w", err)
	}

	s.log.Info("Gym created",
		zap.String("gym_id", gym.ID.String()),
		zap.String("owner_id", ownerID),
		zap.String("name", req.Name),
	)

	resp := response.GymToResponse(gym)
	return &resp, nil
}

func (s *gymService) GetGym(ctx context.Context, gymID string) (*response.GymResponse, error) {
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

	resp := response.GymToResponse(gym)
	return &resp, nil
}

func (s *gymService) ListGyms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GymResponse], error) {
	gyms, err := s.repo.Gym.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list gyms", zap.Error(err))
		return nil, fmt.Errorf("list gyms: %w", err)
	}

	total, err := s.repo.Gym.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count gyms", zap.Error(err))
		return nil, fmt.Errorf("count gyms: %w", err)
	}

	gymResponses := make([]response.GymResponse, len(gyms))
	for i, gym := range gyms {
		gymResponses[i] = response.GymToResponse(gym)
	}

	return response.NewPaginatedResponse(gymResponses, req.Page, req.PerPage, total), nil
}

func (s *gymService) UpdateGym(ctx context.Context, userID, role, gymID string, req *request.UpdateGymRequest) (*response.GymResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update gym validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

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

	if role != entity.RoleAdmin && gym.OwnerID != userUUID {
		return nil, fmt.Errorf("forbidden: gym belongs to another owner")
	}

	gym.Name = req.Name
	gym.Address = req.Address
	gym.Phone = req.Phone
	gym.UpdatedAt = time.Now()

	if err := s.repo.Gym.Update(ctx, gym); err != nil {
		s.log.Error("Failed to update gym",
			zap.Error(err),
			zap.String("gym_id", gymID),
		)
		return nil, fmt.Errorf("update gym: %w", err)
	}

	s.log.Info("Gym updated", zap.String("gym_id", gymID))

	resp := response.GymToResponse(gym)
	return &resp, nil
}
