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

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}

// List handles GET /api/v1/tours
func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListTours(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Tours retrieved", resp)
}

// Get handles GET /api/v1/tours/{id}
func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	resp, err := h.service.GetTour(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Tour retrieved", resp)
}

// GetBySlug handles GET /api/v1/tours/slug/{slug}
func (h *TourHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Tour slug is required", nil)
		return
	}

	resp, err := h.service.GetTourBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Tour retrieved", resp)
}

// Create handles POST /api/v1/tours (admin)
func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.CreateTour(r.Context(), &req)
	if err != nil {
		h.log.Error("Tour creation failed", zap.Error(err), zap.String("name", req.Name))
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Tour created", resp)
}

// Update handles PATCH /api/v1/tours/{id} (admin)
func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	var req request.UpdateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.UpdateTour(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Tour updated", resp)
}

// Delete handles DELETE /api/v1/tours/{id} (admin)
func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
		return
	}

	if err := h.service.DeleteTour(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Tour deleted", nil)
}
