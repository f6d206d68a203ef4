package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTour(
	r chi.Router,
	tourHandler *adaptor.TourHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/tours", tourHandler.List)
	r.Get("/api/v1/tours/{id}", tourHandler.Get)
	r.Get("/api/v1/tours/slug/{slug}", tourHandler.GetBySlug)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/v1/tours", tourHandler.Create)
		r.Patch("/api/v1/tours/{id}", tourHandler.Update)
		r.Delete("/api/v1/tours/{id}", tourHandler.Delete)
	})
}
