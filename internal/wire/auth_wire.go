package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/v1/users/signup", authHandler.Register)
	r.Post("/api/v1/users/login", authHandler.Login)
	r.Post("/api/v1/users/forgot-password", authHandler.ForgotPassword)
	r.Patch("/api/v1/users/reset-password/{token}", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Post("/api/v1/users/logout", authHandler.Logout)
}
