package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Credential endpoints get a tighter per-IP rate limit than the rest
	// of the API to slow down brute forcing.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10, log))

		// POST /api/register - Create a new account
		r.Post("/api/register", authHandler.Register)

		// POST /api/login - Exchange credentials for a JWT
		r.Post("/api/login", authHandler.Login)
	})
}
