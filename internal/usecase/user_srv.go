package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	DeactivateAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load profile", err)
	}
	if user == nil {
		return nil, newError(KindNotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load profile", err)
	}
	if user == nil {
		return nil, newError(KindNotFound, "User not found")
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, wrapError(KindUnknown, "Failed to check email", err)
		}
		if existing != nil {
			return nil, newError(KindConflict, "Email is already registered")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Photo != nil {
		user.Photo = req.Photo
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, wrapError(KindUnknown, "Failed to update profile", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeactivateAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.User.Deactivate(ctx, userID); err != nil {
		return wrapError(KindUnknown, "Failed to deactivate account", err)
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		return wrapError(KindUnknown, "Failed to revoke sessions", err)
	}

	s.log.Info("Account deactivated", zap.String("user_id", userID.String()))
	return nil
}
