package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByTourID(ctx context.Context, tourID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByTourID(ctx context.Context, tourID uuid.UUID) (int64, error)
	FindByUserAndTour(ctx context.Context, userID, tourID uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	AverageRatingByTourID(ctx context.Context, tourID uuid.UUID) (float64, int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, tour_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.TourID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("tour_id", review.TourID.String()),
		)
		return fmt.Errorf("create review for tour %s: %w", review.TourID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, tour_id, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.TourID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByTourID(ctx context.Context, tourID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, tour_id, rating, comment, created_at
		FROM reviews
		WHERE tour_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tourID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find reviews by tour ID %s: %w", tourID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.TourID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByTourID(ctx context.Context, tourID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE tour_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, tourID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return 0, fmt.Errorf("count reviews by tour ID %s: %w", tourID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserAndTour(ctx context.Context, userID, tourID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, tour_id, rating, comment, created_at
		FROM reviews
		WHERE user_id = $1 AND tour_id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, tourID).Scan(
		&review.ID,
		&review.UserID,
		&review.TourID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and tour",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and tour %s: %w", userID.String(), tourID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	return nil
}

func (r *reviewRepository) AverageRatingByTourID(ctx context.Context, tourID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE tour_id = $1
	`

	var average float64
	var count int64
	err := r.db.QueryRow(ctx, query, tourID).Scan(&average, &count)
	if err != nil {
		r.log.Error("Failed to aggregate tour ratings",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return 0, 0, fmt.Errorf("aggregate ratings for tour %s: %w", tourID.String(), err)
	}

	return average, count, nil
}
