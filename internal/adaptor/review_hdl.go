package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Create handles POST /api/v1/tours/{tourId}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.CreateReview(r.Context(), userID, tourID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review created", resp)
}

// ListByTour handles GET /api/v1/tours/{tourId}/reviews
func (h *ReviewHandler) ListByTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := utils.ParseUUID(chi.URLParam(r, "tourId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	resp, err := h.service.ListTourReviews(r.Context(), tourID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved", resp)
}

// Delete handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())

	if err := h.service.DeleteReview(r.Context(), reviewID, userID, role); err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
