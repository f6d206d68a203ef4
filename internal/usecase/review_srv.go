package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID, tourID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListTourReviews(ctx context.Context, tourID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID, callerRole string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, tourID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	existing, err := s.repo.Review.FindByUserAndTour(ctx, userID, tourID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to check existing review", err)
	}
	if existing != nil {
		return nil, newError(KindConflict, "You have already reviewed this tour")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		TourID:  tourID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, wrapError(KindUnknown, "Failed to create review", err)
	}

	s.refreshTourRatings(ctx, tourID)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("tour_id", tourID.String()),
	)

	resp := response.ReviewToResponse(review, "")
	return &resp, nil
}

func (s *reviewService) ListTourReviews(ctx context.Context, tourID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	reviews, err := s.repo.Review.FindByTourID(ctx, tourID, page.Limit(), page.Offset())
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to list reviews", err)
	}

	total, err := s.repo.Review.CountByTourID(ctx, tourID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to count reviews", err)
	}

	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		name := ""
		if user, err := s.repo.User.FindByID(ctx, review.UserID); err == nil && user != nil {
			name = user.Name
		}
		items = append(items, response.ReviewToResponse(review, name))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID, callerRole string) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return wrapError(KindUnknown, "Failed to load review", err)
	}
	if review == nil {
		return newError(KindNotFound, "Review not found")
	}

	if review.UserID != callerID && callerRole != string(entity.RoleAdmin) {
		return newError(KindForbidden, "You can only delete your own reviews")
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		return wrapError(KindUnknown, "Failed to delete review", err)
	}

	s.refreshTourRatings(ctx, review.TourID)
	return nil
}

// refreshTourRatings recomputes the denormalized average and count on the
// tour. Aggregation failures are logged, not surfaced; the review write
// already succeeded.
func (s *reviewService) refreshTourRatings(ctx context.Context, tourID uuid.UUID) {
	average, quantity, err := s.repo.Review.AverageRatingByTourID(ctx, tourID)
	if err != nil {
		s.log.Error("Failed to aggregate tour ratings",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return
	}

	if err := s.repo.Tour.UpdateRatings(ctx, tourID, average, quantity); err != nil {
		s.log.Error("Failed to store tour ratings",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
	}
}
