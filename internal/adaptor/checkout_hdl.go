package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// CreateSession handles GET /api/v1/bookings/checkout-session/{tourId}
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tourID, err := utils.ParseUUID(chi.URLParam(r, "tourId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	resp, err := h.service.CreateCheckoutSession(r.Context(), userID, tourID)
	if err != nil {
		h.log.Error("Checkout session creation failed",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.String("user_id", userID.String()))
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Checkout session created", resp)
}

// SessionStatus handles GET /api/v1/bookings/checkout-session-status/{sessionId}
func (h *CheckoutHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())

	resp, err := h.service.ReconcileSession(r.Context(), userID, role, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Session status retrieved", resp)
}
