package repository

import (
	"gym-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User                UserRepository
	Gym                 GymRepository
	Class               ClassRepository
	Reservation         ReservationRepository
	Payment             PaymentRepository
	Subscription        SubscriptionRepository
	SubscriptionPayment SubscriptionPaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:                NewUserRepository(db, log),
		Gym:                 NewGymRepository(db, log),
		Class:               NewClassRepository(db, log),
		Reservation:         NewReservationRepository(db, log),
		Payment:             NewPaymentRepository(db, log),
		Subscription:        NewSubscriptionRepository(db, log),
		SubscriptionPayment: NewSubscriptionPaymentRepository(db, log),
	}
}
