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

type BookingService interface {
	// Member endpoints
	CreateReservation(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelReservation(ctx context.Context, userID string, reservationID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Staff endpoints
	ListReservationsForClass(ctx context.Context, userID, role, classID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability *cache.AvailabilityCache
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, availability *cache.AvailabilityCache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "booking")),
	}
}

// CreateReservation admits a booking against the class capacity: confirmed
// while seats remain, waitlisted once the class is full. The count and the
// insert are separate statements, so two concurrent requests on a nearly-full
// class can both confirm; see DESIGN.md.
func (s *bookingService) CreateReservation(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, fmt.Errorf("invalid class ID format %s: %w", req.ClassID, err)
	}

	// Validate class exists and is open for booking
	class, err := s.repo.Class.FindByID(ctx, classID)
	if err != nil {
		s.log.Error("Failed to load class session", zap.Error(err))
		return nil, fmt.Errorf("load class session: %w", err)
	}
	if class == nil || !class.IsActive {
		return nil, fmt.Errorf("class %s not found", req.ClassID)
	}

	// One non-cancelled reservation per (user, class)
	existing, err := s.repo.Reservation.FindActiveByUserAndClass(ctx, userUUID, classID)
	if err != nil {
		return nil, fmt.Errorf("check existing reservation: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("already booked for this class")
	}

	// Admission decision: confirmed while under capacity, waitlisted after
	confirmedCount, err := s.repo.Reservation.CountConfirmedByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed reservations: %w", err)
	}

	status := entity.ReservationStatusConfirmed
	if confirmedCount >= int64(class.Capacity) {
		status = entity.ReservationStatusWaitlisted
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClassID:  classID,
		UserID:   userUUID,
		Status:   status,
		Notes:    req.Notes,
		BookedAt: now,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("class_id", req.ClassID),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.availability.Invalidate(ctx, classID)

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("class_id", req.ClassID),
		zap.String("user_id", userID),
		zap.String("status", string(status)),
		zap.Int64("confirmed_count", confirmedCount),
		zap.Int("capacity", class.Capacity),
	)

	resp := s.buildBookingResponse(ctx, reservation)
	return &resp, nil
}

// CancelReservation cancels the caller's reservation. When a confirmed seat is
// freed the earliest-booked waitlisted reservation on the class is promoted;
// exactly one seat was freed, so at most one promotion keeps the confirmed
// count within capacity without re-checking it.
func (s *bookingService) CancelReservation(ctx context.Context, userID string, reservationID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	if reservation.UserID != userUUID {
		return nil, fmt.Errorf("forbidden: reservation belongs to another user")
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, fmt.Errorf("reservation already cancelled")
	}
	if reservation.Status == entity.ReservationStatusAttended || reservation.Status == entity.ReservationStatusNoShow {
		return nil, fmt.Errorf("cannot cancel reservation with status %s", reservation.Status)
	}

	priorStatus := reservation.Status
	now := time.Now()

	if err := s.repo.Reservation.Cancel(ctx, id, now); err != nil {
		s.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}

	reservation.Status = entity.ReservationStatusCancelled
	reservation.CancelledAt = &now
	reservation.UpdatedAt = now

	// A cancelled waitlist entry frees no seat, so nobody is promoted
	if priorStatus == entity.ReservationStatusConfirmed {
		if err := s.promoteOldestWaitlisted(ctx, reservation.ClassID); err != nil {
			return nil, err
		}
	}

	s.availability.Invalidate(ctx, reservation.ClassID)

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("class_id", reservation.ClassID.String()),
		zap.String("prior_status", string(priorStatus)),
	)

	resp := s.buildBookingResponse(ctx, reservation)
	return &resp, nil
}

// promoteOldestWaitlisted moves the first-in-line waitlisted reservation to
// confirmed. FIFO by booked_at keeps the waitlist fair.
func (s *bookingService) promoteOldestWaitlisted(ctx context.Context, classID uuid.UUID) error {
	next, err := s.repo.Reservation.FindOldestWaitlisted(ctx, classID)
	if err != nil {
		return fmt.Errorf("find waitlisted reservation: %w", err)
	}
	if next == nil {
		return nil
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, next.ID, entity.ReservationStatusConfirmed); err != nil {
		s.log.Error("Failed to promote waitlisted reservation",
			zap.Error(err),
			zap.String("reservation_id", next.ID.String()),
			zap.String("class_id", classID.String()),
		)
		return fmt.Errorf("promote waitlisted reservation: %w", err)
	}

	s.log.Info("Waitlisted reservation promoted",
		zap.String("reservation_id", next.ID.String()),
		zap.String("class_id", classID.String()),
		zap.String("user_id", next.UserID.String()),
	)

	return nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(reservations))
	for i, reservation := range reservations {
		bookingResponses[i] = s.buildBookingResponse(ctx, reservation)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) ListReservationsForClass(ctx context.Context, userID, role, classID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	classUUID, err := uuid.Parse(classID)
	if err != nil {
		return nil, fmt.Errorf("invalid class ID format %s: %w", classID, err)
	}

	class, err := s.repo.Class.FindByID(ctx, classUUID)
	if err != nil {
		return nil, fmt.Errorf("load class session: %w", err)
	}
	if class == nil {
		return nil, fmt.Errorf("class %s not found", classID)
	}

	// Only the owning gym's staff (or an admin) may see the roster
	if role != entity.RoleAdmin {
		gym, err := s.repo.Gym.FindByID(ctx, class.GymID)
		if err != nil {
			return nil, fmt.Errorf("load gym: %w", err)
		}
		if gym == nil || gym.OwnerID != userUUID {
			return nil, fmt.Errorf("forbidden: class belongs to another gym")
		}
	}

	reservations, err := s.repo.Reservation.FindByClassID(ctx, classUUID)
	if err != nil {
		s.log.Error("Failed to list reservations for class",
			zap.Error(err),
			zap.String("class_id", classID),
		)
		return nil, fmt.Errorf("list reservations for class: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(reservations))
	for i, reservation := range reservations {
		bookingResponses[i] = response.ReservationToResponse(reservation)
	}

	return bookingResponses, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) buildBookingResponse(ctx context.Context, reservation *entity.Reservation) response.BookingResponse {
	resp := response.ReservationToResponse(reservation)

	class, _ := s.repo.Class.FindByID(ctx, reservation.ClassID)
	if class != nil {
		resp.ClassName = class.Name
		startsAt := class.StartsAt
		resp.StartsAt = &startsAt

		gym, _ := s.repo.Gym.FindByID(ctx, class.GymID)
		if gym != nil {
			resp.GymName = gym.Name
		}
	}

	return resp
}
