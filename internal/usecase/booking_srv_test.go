package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newBookingFixture(capacity int) (BookingService, *repository.Repository, *entity.ClassSession) {
	repo := newTestRepository()

	class := &entity.ClassSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		GymID:    uuid.New(),
		Name:     "Morning Yoga",
		StartsAt: time.Now().Add(24 * time.Hour),
		Capacity: capacity,
		IsActive: true,
	}
	repo.Class.(*stubClassRepo).classes[class.ID] = class

	service := NewBookingService(repo, testAvailabilityCache(), zap.NewNop())
	return service, repo, class
}

func seedReservation(repo *repository.Repository, classID, userID uuid.UUID, status entity.ReservationStatus, bookedAt time.Time) *entity.Reservation {
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: bookedAt,
			UpdatedAt: bookedAt,
		},
		ClassID:  classID,
		UserID:   userID,
		Status:   status,
		BookedAt: bookedAt,
	}
	stub := repo.Reservation.(*stubReservationRepo)
	stub.reservations = append(stub.reservations, reservation)
	return reservation
}

func TestCreateReservationConfirmsWhileSeatsRemain(t *testing.T) {
	service, _, class := newBookingFixture(2)

	booking, err := service.CreateReservation(context.Background(), uuid.New().String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if booking.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
	if booking.ClassName != "Morning Yoga" {
		t.Fatalf("expected class name on response, got %q", booking.ClassName)
	}
}

func TestCreateReservationWaitlistsWhenFull(t *testing.T) {
	service, repo, class := newBookingFixture(2)

	now := time.Now()
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, now.Add(-2*time.Minute))
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, now.Add(-time.Minute))

	booking, err := service.CreateReservation(context.Background(), uuid.New().String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if booking.Status != entity.ReservationStatusWaitlisted {
		t.Fatalf("expected waitlisted, got %s", booking.Status)
	}
}

func TestCreateReservationWaitlistIgnoresCancelledSeats(t *testing.T) {
	service, repo, class := newBookingFixture(1)

	// A cancelled reservation does not hold a seat
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusCancelled, time.Now().Add(-time.Hour))

	booking, err := service.CreateReservation(context.Background(), uuid.New().String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if booking.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
}

func TestCreateReservationRejectsDuplicate(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	userID := uuid.New()
	seedReservation(repo, class.ID, userID, entity.ReservationStatusWaitlisted, time.Now())

	_, err := service.CreateReservation(context.Background(), userID.String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err == nil || !strings.Contains(err.Error(), "already booked") {
		t.Fatalf("expected duplicate booking error, got %v", err)
	}
}

func TestCreateReservationAllowsRebookAfterCancel(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	userID := uuid.New()
	seedReservation(repo, class.ID, userID, entity.ReservationStatusCancelled, time.Now().Add(-time.Hour))

	booking, err := service.CreateReservation(context.Background(), userID.String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if booking.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
}

func TestCreateReservationRejectsInactiveClass(t *testing.T) {
	service, _, class := newBookingFixture(5)
	class.IsActive = false

	_, err := service.CreateReservation(context.Background(), uuid.New().String(), &request.CreateBookingRequest{
		ClassID: class.ID.String(),
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCancelConfirmedPromotesOldestWaitlisted(t *testing.T) {
	service, repo, class := newBookingFixture(2)

	now := time.Now()
	userA := uuid.New()
	resA := seedReservation(repo, class.ID, userA, entity.ReservationStatusConfirmed, now.Add(-3*time.Minute))
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, now.Add(-2*time.Minute))
	resC := seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusWaitlisted, now.Add(-time.Minute))
	resD := seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusWaitlisted, now)

	cancelled, err := service.CancelReservation(context.Background(), userA.String(), resA.ID.String())
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if cancelled.Status != entity.ReservationStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}

	// The earliest-booked waitlisted reservation takes the freed seat
	if resC.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("expected oldest waitlisted promoted, got %s", resC.Status)
	}
	if resD.Status != entity.ReservationStatusWaitlisted {
		t.Fatalf("expected later waitlisted untouched, got %s", resD.Status)
	}
}

func TestCancelWaitlistedDoesNotPromote(t *testing.T) {
	service, repo, class := newBookingFixture(1)

	now := time.Now()
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, now.Add(-3*time.Minute))
	userB := uuid.New()
	resB := seedReservation(repo, class.ID, userB, entity.ReservationStatusWaitlisted, now.Add(-2*time.Minute))
	resC := seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusWaitlisted, now.Add(-time.Minute))

	if _, err := service.CancelReservation(context.Background(), userB.String(), resB.ID.String()); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}

	// No seat was freed, so nobody moves up
	if resC.Status != entity.ReservationStatusWaitlisted {
		t.Fatalf("expected waitlisted reservation untouched, got %s", resC.Status)
	}
}

func TestCancelReservationForbiddenForOtherUser(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	res := seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, time.Now())

	_, err := service.CancelReservation(context.Background(), uuid.New().String(), res.ID.String())
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if res.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("reservation must be untouched, got %s", res.Status)
	}
}

func TestCancelReservationAlreadyCancelled(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	userID := uuid.New()
	res := seedReservation(repo, class.ID, userID, entity.ReservationStatusCancelled, time.Now())

	_, err := service.CancelReservation(context.Background(), userID.String(), res.ID.String())
	if err == nil || !strings.Contains(err.Error(), "already cancelled") {
		t.Fatalf("expected already cancelled error, got %v", err)
	}
}

func TestCancelReservationRejectsSettledStatuses(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	userID := uuid.New()
	res := seedReservation(repo, class.ID, userID, entity.ReservationStatusAttended, time.Now())

	_, err := service.CancelReservation(context.Background(), userID.String(), res.ID.String())
	if err == nil || !strings.Contains(err.Error(), "cannot cancel") {
		t.Fatalf("expected cannot cancel error, got %v", err)
	}
}

func TestListReservationsForClassRequiresOwnership(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	owner := uuid.New()
	repo.Gym.(*stubGymRepo).gyms[class.GymID] = &entity.Gym{
		Base:     entity.Base{ID: class.GymID},
		OwnerID:  owner,
		Name:     "Downtown Gym",
		IsActive: true,
	}
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, time.Now())

	// A different owner is rejected
	_, err := service.ListReservationsForClass(context.Background(), uuid.New().String(), entity.RoleOwner, class.ID.String())
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	// The owning user sees the roster
	roster, err := service.ListReservationsForClass(context.Background(), owner.String(), entity.RoleOwner, class.ID.String())
	if err != nil {
		t.Fatalf("ListReservationsForClass: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(roster))
	}

	// Admins bypass the ownership check
	if _, err := service.ListReservationsForClass(context.Background(), uuid.New().String(), entity.RoleAdmin, class.ID.String()); err != nil {
		t.Fatalf("admin roster access: %v", err)
	}
}

func TestGetUserBookingsPaginates(t *testing.T) {
	service, repo, class := newBookingFixture(5)

	userID := uuid.New()
	seedReservation(repo, class.ID, userID, entity.ReservationStatusConfirmed, time.Now())
	seedReservation(repo, class.ID, uuid.New(), entity.ReservationStatusConfirmed, time.Now())

	page, err := service.GetUserBookings(context.Background(), userID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected 1 booking for user, got %d", len(page.Data))
	}
	if page.Pagination.Total != 1 {
		t.Fatalf("expected total 1, got %d", page.Pagination.Total)
	}
}
