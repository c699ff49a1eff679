package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-booking/internal/dto/request"
	"gym-booking/internal/usecase"
	"gym-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Webhook handles POST /api/payments/webhook (public, called by the gateway).
// Only a structurally invalid envelope earns a 400; anything the dispatch
// swallows is acknowledged so the gateway stops retrying. Errors that escape
// the dispatch become a 500, which the gateway treats as "retry later".
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var envelope request.WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.log.Warn("Malformed webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid webhook payload", nil)
		return
	}

	if envelope.Type == "" || envelope.Data.ID.String() == "" {
		h.log.Warn("Webhook envelope missing type or data.id",
			zap.String("type", envelope.Type),
			zap.String("action", envelope.Action),
		)
		utils.ResponseBadRequest(w, "Webhook type and data.id are required", nil)
		return
	}

	h.log.Info("Webhook received",
		zap.String("type", envelope.Type),
		zap.String("action", envelope.Action),
		zap.String("data_id", envelope.Data.ID.String()),
	)

	if err := h.service.HandleWebhook(r.Context(), &envelope); err != nil {
		h.log.Error("Webhook processing failed",
			zap.Error(err),
			zap.String("type", envelope.Type),
			zap.String("data_id", envelope.Data.ID.String()),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "received", map[string]bool{
		"received":  true,
		"processed": true,
	})
}

// CreatePayment handles POST /api/payments (protected)
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}
