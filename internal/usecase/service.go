package usecase

import (
	"gym-booking/internal/data/repository"
	"gym-booking/pkg/cache"
	"gym-booking/pkg/gateway"
	"gym-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Gym          GymService
	Class        ClassService
	Booking      BookingService
	Subscription SubscriptionService
	Payment      PaymentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gw gateway.PaymentGateway,
	availability *cache.AvailabilityCache,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Gym:          NewGymService(repo, log),
		Class:        NewClassService(repo, availability, log),
		Booking:      NewBookingService(repo, availability, log),
		Subscription: NewSubscriptionService(repo, log),
		Payment:      NewPaymentService(repo, gw, log),
	}
}
