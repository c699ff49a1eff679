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

type ClassHandler struct {
	service usecase.ClassService
	log     *zap.Logger
}

func NewClassHandler(service usecase.ClassService, log *zap.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log.With(zap.String("handler", "class")),
	}
}

// CreateClass handles POST /api/classes (owner only)
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	class, err := h.service.CreateClass(r.Context(), userID.String(), role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create class")
		return
	}

	utils.ResponseCreated(w, "success", class)
}

// GetClass handles GET /api/classes/{id} (public)
func (h *ClassHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")
	if classID == "" {
		utils.ResponseBadRequest(w, "Class ID is required", nil)
		return
	}

	class, err := h.service.GetClass(r.Context(), classID)
	if err != nil {
		handleServiceError(w, h.log, err, "get class")
		return
	}

	utils.ResponseSuccess(w, "success", class)
}

// ListGymClasses handles GET /api/gyms/{id}/classes (public)
func (h *ClassHandler) ListGymClasses(w http.ResponseWriter, r *http.Request) {
	gymID := chi.URLParam(r, "id")
	if gymID == "" {
		utils.ResponseBadRequest(w, "Gym ID is required", nil)
		return
	}

	classes, err := h.service.ListClassesByGym(r.Context(), gymID)
	if err != nil {
		handleServiceError(w, h.log, err, "list gym classes")
		return
	}

	utils.ResponseSuccess(w, "success", classes)
}

// DeactivateClass handles DELETE /api/classes/{id} (owner only)
func (h *ClassHandler) DeactivateClass(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	classID := chi.URLParam(r, "id")
	if classID == "" {
		utils.ResponseBadRequest(w, "Class ID is required", nil)
		return
	}

	if err := h.service.DeactivateClass(r.Context(), userID.String(), role, classID); err != nil {
		handleServiceError(w, h.log, err, "deactivate class")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
