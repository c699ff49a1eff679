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

type GymHandler struct {
	service  usecase.GymService
	payments usecase.PaymentService
	log      *zap.Logger
}

func NewGymHandler(service usecase.GymService, payments usecase.PaymentService, log *zap.Logger) *GymHandler {
	return &GymHandler{
		service:  service,
		payments: payments,
		log:      log.With(zap.String("handler", "gym")),
	}
}

// CreateGym handles POST /api/gyms (owner only)
func (h *GymHandler) CreateGym(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	gym, err := h.service.CreateGym(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create gym")
		return
	}

	utils.ResponseCreated(w, "success", gym)
}

// GetGym handles GET /api/gyms/{id} (public)
func (h *GymHandler) GetGym(w http.ResponseWriter, r *http.Request) {
	gymID := chi.URLParam(r, "id")
	if gymID == "" {
		utils.ResponseBadRequest(w, "Gym ID is required", nil)
		return
	}

	gym, err := h.service.GetGym(r.Context(), gymID)
	if err != nil {
		handleServiceError(w, h.log, err, "get gym")
		return
	}

	utils.ResponseSuccess(w, "success", gym)
}

// ListGyms handles GET /api/gyms (public)
func (h *GymHandler) ListGyms(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	gyms, err := h.service.ListGyms(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list gyms")
		return
	}

	utils.ResponseSuccess(w, "success", gyms)
}

// UpdateGym handles PUT /api/gyms/{id} (owner only)
func (h *GymHandler) UpdateGym(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	gymID := chi.URLParam(r, "id")
	if gymID == "" {
		utils.ResponseBadRequest(w, "Gym ID is required", nil)
		return
	}

	var req request.UpdateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	gym, err := h.service.UpdateGym(r.Context(), userID.String(), role, gymID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update gym")
		return
	}

	utils.ResponseSuccess(w, "success", gym)
}

// ListGymPayments handles GET /api/gyms/payments (owner only) and returns
// payments across every gym the caller owns
func (h *GymHandler) ListGymPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	payments, err := h.payments.ListPaymentsForOwner(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list gym payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}
