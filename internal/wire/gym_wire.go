package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/internal/data/entity"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGym(
	r chi.Router,
	gymHandler *adaptor.GymHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/gyms - List gyms (public, paginated)
	r.Get("/api/gyms", gymHandler.ListGyms)

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

		// POST /api/gyms - Register a new gym
		r.Post("/api/gyms", gymHandler.CreateGym)

		// GET /api/gyms/payments - Payments across every gym the caller owns
		r.Get("/api/gyms/payments", gymHandler.ListGymPayments)

		// PUT /api/gyms/{id} - Update gym details (ownership checked in service)
		r.Put("/api/gyms/{id}", gymHandler.UpdateGym)
	})

	// GET /api/gyms/{id} - Gym details (public)
	// Registered after the static /api/gyms/payments route; chi matches
	// static segments before parameters either way.
	r.Get("/api/gyms/{id}", gymHandler.GetGym)
}
