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

type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Tour, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, tour *entity.Tour) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	UpdateRatings(ctx context.Context, tourID uuid.UUID, average float64, quantity int64) error
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, name, slug, summary, description, image_cover, price, duration_days,
	       max_group_size, difficulty, ratings_average, ratings_quantity, created_at, updated_at`

func scanTour(row pgx.Row) (*entity.Tour, error) {
	var tour entity.Tour
	err := row.Scan(
		&tour.ID,
		&tour.Name,
		&tour.Slug,
		&tour.Summary,
		&tour.Description,
		&tour.ImageCover,
		&tour.Price,
		&tour.DurationDays,
		&tour.MaxGroupSize,
		&tour.Difficulty,
		&tour.RatingsAverage,
		&tour.RatingsQuantity,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (id, name, slug, summary, description, image_cover, price, duration_days,
		                   max_group_size, difficulty, ratings_average, ratings_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Name,
		tour.Slug,
		tour.Summary,
		tour.Description,
		tour.ImageCover,
		tour.Price,
		tour.DurationDays,
		tour.MaxGroupSize,
		tour.Difficulty,
		tour.RatingsAverage,
		tour.RatingsQuantity,
		tour.CreatedAt,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("name", tour.Name),
		)
		return fmt.Errorf("create tour %s: %w", tour.Name, err)
	}

	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	tour, err := scanTour(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return tour, nil
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE slug = $1`

	tour, err := scanTour(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find tour by slug %s: %w", slug, err)
	}

	return tour, nil
}

func (r *tourRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tours",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find tours: %w", err)
	}
	defer rows.Close()

	var tours []*entity.Tour
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			r.log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, tour)
	}

	return tours, nil
}

func (r *tourRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM tours`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("count tours: %w", err)
	}

	return count, nil
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	query := `
		UPDATE tours
		SET name = $2, slug = $3, summary = $4, description = $5, image_cover = $6,
		    price = $7, duration_days = $8, max_group_size = $9, difficulty = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Name,
		tour.Slug,
		tour.Summary,
		tour.Description,
		tour.ImageCover,
		tour.Price,
		tour.DurationDays,
		tour.MaxGroupSize,
		tour.Difficulty,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("update tour %s: %w", tour.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", tour.ID.String())
	}

	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tours WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("delete tour %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", id.String())
	}

	r.log.Info("Tour deleted", zap.String("tour_id", id.String()))
	return nil
}

func (r *tourRepository) UpdateRatings(ctx context.Context, tourID uuid.UUID, average float64, quantity int64) error {
	query := `
		UPDATE tours
		SET ratings_average = $2, ratings_quantity = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, tourID, average, quantity)
	if err != nil {
		r.log.Error("Failed to update tour ratings",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return fmt.Errorf("update tour %s ratings: %w", tourID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", tourID.String())
	}

	return nil
}
