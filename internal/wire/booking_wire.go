package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Get("/api/v1/bookings/my", bookingHandler.ListMine)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/v1/bookings", bookingHandler.ListAll)
		r.Get("/api/v1/bookings/{id}", bookingHandler.Get)
		r.Patch("/api/v1/bookings/{id}", bookingHandler.Update)
		r.Delete("/api/v1/bookings/{id}", bookingHandler.Delete)
	})
}
