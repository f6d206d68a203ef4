package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo *repository.Repository
	mail EmailSender
	cfg  *utils.Config
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, mail EmailSender, cfg *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		mail: mail,
		cfg:  cfg,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to check email", err)
	}
	if existing != nil {
		return nil, newError(KindConflict, "Email is already registered")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, wrapError(KindUnknown, "Failed to process password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, wrapError(KindUnknown, "Failed to create account", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	// Fire-and-forget; a mail failure must never fail the signup.
	go s.mail.SendWelcome(user.Name, user.Email)

	return &response.AuthResponse{
		UserID:    user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to look up account", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		// Same answer for unknown email and wrong password.
		return nil, newError(KindUnauthorized, "Incorrect email or password")
	}
	if !user.IsActive {
		return nil, newError(KindUnauthorized, "Account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		UserID:    user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return wrapError(KindUnauthorized, "Session not found or already revoked", err)
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return wrapError(KindUnknown, "Failed to look up account", err)
	}
	if user == nil || !user.IsActive {
		// Do not reveal whether the email exists.
		return nil
	}

	token := utils.GenerateResetToken()
	reset := &entity.PasswordReset{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Auth.ResetExpiryMinutes) * time.Minute),
	}

	if err := s.repo.PasswordReset.Create(ctx, reset); err != nil {
		return wrapError(KindUnknown, "Failed to create reset token", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.App.FrontURL, token)
	go s.mail.SendPasswordReset(user.Name, user.Email, resetURL)

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error {
	reset, err := s.repo.PasswordReset.FindValidToken(ctx, token)
	if err != nil {
		return wrapError(KindUnknown, "Failed to verify reset token", err)
	}
	if reset == nil {
		return newError(KindUnauthorized, "Reset token is invalid or has expired")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return wrapError(KindUnknown, "Failed to process password", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, reset.UserID, passwordHash); err != nil {
		return wrapError(KindUnknown, "Failed to update password", err)
	}

	if err := s.repo.PasswordReset.MarkAsUsed(ctx, reset.ID); err != nil {
		return wrapError(KindUnknown, "Failed to invalidate reset token", err)
	}

	// Changing the password logs the user out everywhere.
	if err := s.repo.Session.RevokeAllUserSessions(ctx, reset.UserID); err != nil {
		return wrapError(KindUnknown, "Failed to revoke sessions", err)
	}

	s.log.Info("Password reset completed", zap.String("user_id", reset.UserID.String()))
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Auth.SessionExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, wrapError(KindUnknown, "Failed to create session", err)
	}

	return session, nil
}
