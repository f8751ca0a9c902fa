package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"experience-booking/internal/dto/request"
	"experience-booking/internal/usecase"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ExperienceHandler struct {
	service usecase.ExperienceService
	log     *zap.Logger
}

func NewExperienceHandler(service usecase.ExperienceService, log *zap.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		service: service,
		log:     log.With(zap.String("handler", "experience")),
	}
}

// CreateExperience handles POST /api/experiences (host)
func (h *ExperienceHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	hostID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	experience, err := h.service.CreateExperience(r.Context(), hostID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create experience")
		return
	}

	utils.ResponseCreated(w, "success", experience)
}

// ListExperiences handles GET /api/experiences (public)
func (h *ExperienceHandler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	experiences, err := h.service.ListActive(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list experiences")
		return
	}

	utils.ResponseSuccess(w, "success", experiences)
}

// GetExperience handles GET /api/experiences/{id} (public)
func (h *ExperienceHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	experienceID := chi.URLParam(r, "id")
	if experienceID == "" {
		utils.ResponseBadRequest(w, "Experience ID is required", nil)
		return
	}

	experience, err := h.service.GetExperienceByID(r.Context(), experienceID)
	if err != nil {
		h.handleServiceError(w, err, "get experience")
		return
	}

	utils.ResponseSuccess(w, "success", experience)
}

// ==================== ADMIN METHODS ====================

// UpdateStatus handles PUT /api/admin/experiences/{id}/status (admin only)
func (h *ExperienceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	experienceID := chi.URLParam(r, "id")
	if experienceID == "" {
		utils.ResponseBadRequest(w, "Experience ID is required", nil)
		return
	}

	var req request.UpdateExperienceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), adminID.String(), experienceID, &req); err != nil {
		h.handleServiceError(w, err, "update experience status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *ExperienceHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"), strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
