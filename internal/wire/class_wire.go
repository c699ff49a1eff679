package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/internal/data/entity"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireClass(
	r chi.Router,
	classHandler *adaptor.ClassHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/classes/{id} - Class details with live availability
	r.Get("/api/classes/{id}", classHandler.GetClass)

	// GET /api/gyms/{id}/classes - Active classes for a gym
	r.Get("/api/gyms/{id}/classes", classHandler.ListGymClasses)

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

		// POST /api/classes - Schedule a class session
		r.Post("/api/classes", classHandler.CreateClass)

		// DELETE /api/classes/{id} - Take a class off the schedule
		r.Delete("/api/classes/{id}", classHandler.DeactivateClass)
	})
}
