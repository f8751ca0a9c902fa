package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"experience-booking/internal/dto/request"
	"experience-booking/internal/usecase"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service    usecase.PaymentService
	successURL string
	failURL    string
	log        *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, config *utils.Config, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:    service,
		successURL: config.Gateway.SuccessURL,
		failURL:    config.Gateway.FailURL,
		log:        log.With(zap.String("handler", "payment")),
	}
}

// Callback handles POST /api/payments/callback (public, called by the
// payment gateway). The gateway speaks two dialects: a JSON one that
// expects a JSON body back, and a form-encoded one that expects a
// browser redirect.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cb, err := request.ParseGatewayCallback(r)
	if err != nil {
		h.log.Warn("Unparseable gateway callback", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid callback payload", nil)
		return
	}

	err = h.service.HandleCallback(r.Context(), cb)
	declined := errors.Is(err, usecase.ErrPaymentDeclined)

	if cb.FormEncoded {
		// The redirect flow lands the customer's browser here; it needs a
		// page to go to, not a JSON body. A decline is a normal outcome,
		// every other error is ours.
		target := h.successURL
		if err != nil {
			if declined {
				h.log.Info("Form callback reported a declined payment", zap.String("order_id", cb.OrderID))
			} else {
				h.log.Error("Form callback failed", zap.Error(err), zap.String("order_id", cb.OrderID))
			}
			target = h.failURL
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	if err != nil {
		if declined {
			h.log.Info("Callback reported a declined payment", zap.String("order_id", cb.OrderID))
		} else {
			h.log.Error("Callback failed", zap.Error(err), zap.String("order_id", cb.OrderID))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

// ==================== ADMIN METHODS ====================

// ConfirmSettlement handles POST /api/admin/bookings/{id}/confirm (admin only)
func (h *PaymentHandler) ConfirmSettlement(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	req := request.ConfirmBookingRequest{BookingID: bookingID}
	settlement, err := h.service.ConfirmSettlement(r.Context(), adminID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm settlement")
		return
	}

	utils.ResponseSuccess(w, "success", settlement)
}

func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"), strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already"):
		h.log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
