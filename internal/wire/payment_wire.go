package wire

import (
	"gym-booking/internal/adaptor"
	"gym-booking/pkg/middleware"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/webhook - Gateway notifications. No auth: the
	// gateway does not hold a user token, and the handler trusts nothing
	// in the body beyond the payment ID it re-fetches.
	r.Post("/api/payments/webhook", paymentHandler.Webhook)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/payments - Create a pending payment for checkout
		r.Post("/api/payments", paymentHandler.CreatePayment)
	})
}
