package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/internal/data/entity"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/bookings - Reserve a spot in a class (confirm or waitlist)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// PATCH /api/bookings/{id}/cancel - Cancel own reservation
		r.Patch("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/user/bookings - View own booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

		// GET /api/classes/{id}/bookings - Roster for a class session
		// (gym ownership checked in service)
		r.Get("/api/classes/{id}/bookings", bookingHandler.ListClassBookings)
	})
}
