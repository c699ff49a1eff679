package usecase

import (
	"context"
	"time"

	"gym-booking/internal/data/entity"
	"gym-booking/internal/data/repository"
	"gym-booking/pkg/cache"
	"gym-booking/pkg/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository stubs shared by the service tests. Each stub mirrors
// the SQL repository's contract: lookups return (nil, nil) when nothing
// matches, and a non-nil err field forces the failure path.

type stubClassRepo struct {
	classes map[uuid.UUID]*entity.ClassSession
	err     error
}

func (s *stubClassRepo) Create(_ context.Context, class *entity.ClassSession) error {
	if s.err != nil {
		return s.err
	}
	s.classes[class.ID] = class
	return nil
}

func (s *stubClassRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.classes[id], nil
}

func (s *stubClassRepo) FindByGymID(_ context.Context, gymID uuid.UUID) ([]*entity.ClassSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.ClassSession
	for _, class := range s.classes {
		if class.GymID == gymID {
			out = append(out, class)
		}
	}
	return out, nil
}

func (s *stubClassRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	if class, ok := s.classes[id]; ok {
		class.IsActive = false
	}
	return nil
}

type stubGymRepo struct {
	gyms map[uuid.UUID]*entity.Gym
	err  error
}

func (s *stubGymRepo) Create(_ context.Context, gym *entity.Gym) error {
	if s.err != nil {
		return s.err
	}
	s.gyms[gym.ID] = gym
	return nil
}

func (s *stubGymRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Gym, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.gyms[id], nil
}

func (s *stubGymRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Gym, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Gym
	for _, gym := range s.gyms {
		out = append(out, gym)
	}
	return out, nil
}

func (s *stubGymRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.gyms)), s.err
}

func (s *stubGymRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entity.Gym, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Gym
	for _, gym := range s.gyms {
		if gym.OwnerID == ownerID {
			out = append(out, gym)
		}
	}
	return out, nil
}

func (s *stubGymRepo) Update(_ context.Context, gym *entity.Gym) error {
	if s.err != nil {
		return s.err
	}
	s.gyms[gym.ID] = gym
	return nil
}

type stubReservationRepo struct {
	reservations []*entity.Reservation
	err          error
}

func (s *stubReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	if s.err != nil {
		return s.err
	}
	s.reservations = append(s.reservations, reservation)
	return nil
}

func (s *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubReservationRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservationRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, r := range s.reservations {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *stubReservationRepo) FindActiveByUserAndClass(_ context.Context, userID, classID uuid.UUID) (*entity.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.reservations {
		if r.UserID == userID && r.ClassID == classID && r.Status != entity.ReservationStatusCancelled {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubReservationRepo) CountConfirmedByClassID(_ context.Context, classID uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, r := range s.reservations {
		if r.ClassID == classID && r.Status == entity.ReservationStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (s *stubReservationRepo) FindOldestWaitlisted(_ context.Context, classID uuid.UUID) (*entity.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var oldest *entity.Reservation
	for _, r := range s.reservations {
		if r.ClassID != classID || r.Status != entity.ReservationStatusWaitlisted {
			continue
		}
		if oldest == nil || r.BookedAt.Before(oldest.BookedAt) {
			oldest = r
		}
	}
	return oldest, nil
}

func (s *stubReservationRepo) FindByClassID(_ context.Context, classID uuid.UUID) ([]*entity.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Reservation
	for _, r := range s.reservations {
		if r.ClassID == classID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservationRepo) UpdateStatus(_ context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error {
	if s.err != nil {
		return s.err
	}
	for _, r := range s.reservations {
		if r.ID == reservationID {
			r.Status = status
			return nil
		}
	}
	return nil
}

func (s *stubReservationRepo) Cancel(_ context.Context, reservationID uuid.UUID, cancelledAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	for _, r := range s.reservations {
		if r.ID == reservationID {
			r.Status = entity.ReservationStatusCancelled
			r.CancelledAt = &cancelledAt
			return nil
		}
	}
	return nil
}

type stubPaymentRepo struct {
	payments    map[string]*entity.Payment // keyed by external reference
	updateCalls int
	err         error
}

func (s *stubPaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if s.err != nil {
		return s.err
	}
	s.payments[payment.ExternalReference] = payment
	return nil
}

func (s *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubPaymentRepo) FindByExternalReference(_ context.Context, externalRef string) (*entity.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payments[externalRef], nil
}

func (s *stubPaymentRepo) FindByGymIDs(_ context.Context, gymIDs []uuid.UUID, limit, offset int) ([]*entity.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Payment
	for _, p := range s.payments {
		for _, gymID := range gymIDs {
			if p.GymID == gymID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *stubPaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	s.updateCalls++
	if s.err != nil {
		return s.err
	}
	s.payments[payment.ExternalReference] = payment
	return nil
}

type stubSubscriptionPaymentRepo struct {
	payments    map[string]*entity.SubscriptionPayment
	updateCalls int
	err         error
}

func (s *stubSubscriptionPaymentRepo) Create(_ context.Context, payment *entity.SubscriptionPayment) error {
	if s.err != nil {
		return s.err
	}
	s.payments[payment.ExternalReference] = payment
	return nil
}

func (s *stubSubscriptionPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SubscriptionPayment, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubSubscriptionPaymentRepo) FindByExternalReference(_ context.Context, externalRef string) (*entity.SubscriptionPayment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payments[externalRef], nil
}

func (s *stubSubscriptionPaymentRepo) Update(_ context.Context, payment *entity.SubscriptionPayment) error {
	s.updateCalls++
	if s.err != nil {
		return s.err
	}
	s.payments[payment.ExternalReference] = payment
	return nil
}

type stubSubscriptionRepo struct {
	subscriptions map[uuid.UUID]*entity.Subscription
	err           error
}

func (s *stubSubscriptionRepo) Create(_ context.Context, subscription *entity.Subscription) error {
	if s.err != nil {
		return s.err
	}
	s.subscriptions[subscription.ID] = subscription
	return nil
}

func (s *stubSubscriptionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subscriptions[id], nil
}

func (s *stubSubscriptionRepo) FindActiveByOwnerID(_ context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, sub := range s.subscriptions {
		if sub.OwnerID == ownerID && sub.Status == entity.SubscriptionStatusActive {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *stubSubscriptionRepo) FindLatestByOwnerID(_ context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	var latest *entity.Subscription
	for _, sub := range s.subscriptions {
		if sub.OwnerID != ownerID {
			continue
		}
		if latest == nil || sub.CreatedAt.After(latest.CreatedAt) {
			latest = sub
		}
	}
	return latest, nil
}

func (s *stubSubscriptionRepo) UpdateStatus(_ context.Context, subscriptionID uuid.UUID, status entity.SubscriptionStatus) error {
	if s.err != nil {
		return s.err
	}
	if sub, ok := s.subscriptions[subscriptionID]; ok {
		sub.Status = status
	}
	return nil
}

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// stubGateway records fetches and plays back a fixed payment
type stubGateway struct {
	info    *gateway.PaymentInfo
	err     error
	fetches int
}

func (s *stubGateway) FetchPayment(_ context.Context, paymentID string) (*gateway.PaymentInfo, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:                &stubUserRepo{users: map[uuid.UUID]*entity.User{}},
		Gym:                 &stubGymRepo{gyms: map[uuid.UUID]*entity.Gym{}},
		Class:               &stubClassRepo{classes: map[uuid.UUID]*entity.ClassSession{}},
		Reservation:         &stubReservationRepo{},
		Payment:             &stubPaymentRepo{payments: map[string]*entity.Payment{}},
		Subscription:        &stubSubscriptionRepo{subscriptions: map[uuid.UUID]*entity.Subscription{}},
		SubscriptionPayment: &stubSubscriptionPaymentRepo{payments: map[string]*entity.SubscriptionPayment{}},
	}
}

func testAvailabilityCache() *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(nil, zap.NewNop())
}
