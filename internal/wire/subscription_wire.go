package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubscription(
	r chi.Router,
	subscriptionHandler *adaptor.SubscriptionHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/subscriptions - Start a membership (pending until paid)
		r.Post("/api/subscriptions", subscriptionHandler.CreateSubscription)

		// GET /api/user/subscription - Caller's latest subscription
		r.Get("/api/user/subscription", subscriptionHandler.GetMySubscription)

		// PATCH /api/subscriptions/{id}/cancel - Cancel own subscription
		r.Patch("/api/subscriptions/{id}/cancel", subscriptionHandler.CancelSubscription)
	})
}
