package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-booking/internal/dto/request"
	"gym-booking/internal/usecase"
	"gym-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	service usecase.SubscriptionService
	log     *zap.Logger
}

func NewSubscriptionHandler(service usecase.SubscriptionService, log *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log.With(zap.String("handler", "subscription")),
	}
}

// CreateSubscription handles POST /api/subscriptions (protected)
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CreateSubscription(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create subscription")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetMySubscription handles GET /api/user/subscription (protected)
func (h *SubscriptionHandler) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	subscription, err := h.service.GetMySubscription(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get subscription")
		return
	}

	utils.ResponseSuccess(w, "success", subscription)
}

// CancelSubscription handles PATCH /api/subscriptions/{id}/cancel (protected)
func (h *SubscriptionHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	subscriptionID := chi.URLParam(r, "id")
	if subscriptionID == "" {
		utils.ResponseBadRequest(w, "Subscription ID is required", nil)
		return
	}

	if err := h.service.CancelSubscription(r.Context(), userID.String(), subscriptionID); err != nil {
		handleServiceError(w, h.log, err, "cancel subscription")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
