package adaptor

import (
	"encoding/json"
	"net/http"

	"experience-booking/internal/usecase"
	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

// SchedulerHandler exposes the sweep endpoints an external cron hits.
// GET keeps them callable from the simplest possible scheduler config;
// safety against repeats comes from the sweeps being idempotent.
type SchedulerHandler struct {
	service usecase.SchedulerService
	log     *zap.Logger
}

func NewSchedulerHandler(service usecase.SchedulerService, log *zap.Logger) *SchedulerHandler {
	return &SchedulerHandler{
		service: service,
		log:     log.With(zap.String("handler", "scheduler")),
	}
}

// ExpirePending handles GET /api/scheduler/expire-pending
func (h *SchedulerHandler) ExpirePending(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ExpirePending(r.Context())
	if err != nil {
		h.log.Error("Expire-pending sweep failed", zap.Error(err))
		utils.ResponseInternalError(w, "sweep failed")
		return
	}
	h.writeResult(w, result.Count, result.OrderIDs, "no pending bookings to expire")
}

// AutoComplete handles GET /api/scheduler/auto-complete
func (h *SchedulerHandler) AutoComplete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.AutoComplete(r.Context())
	if err != nil {
		h.log.Error("Auto-complete sweep failed", zap.Error(err))
		utils.ResponseInternalError(w, "sweep failed")
		return
	}
	h.writeResult(w, result.Count, result.OrderIDs, "no bookings to complete")
}

func (h *SchedulerHandler) writeResult(w http.ResponseWriter, count int, ids []string, emptyMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if count == 0 {
		json.NewEncoder(w).Encode(map[string]any{"message": emptyMsg})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"count":   count,
		"ids":     ids,
	})
}
