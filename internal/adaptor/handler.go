package adaptor

import (
	"gym-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Gym          *GymHandler
	Class        *ClassHandler
	Booking      *BookingHandler
	Subscription *SubscriptionHandler
	Payment      *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Gym:          NewGymHandler(service.Gym, service.Payment, log),
		Class:        NewClassHandler(service.Class, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Subscription: NewSubscriptionHandler(service.Subscription, log),
		Payment:      NewPaymentHandler(service.Payment, log),
	}
}
