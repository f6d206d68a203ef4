package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Summary         string    `json:"summary"`
	Description     *string   `json:"description,omitempty"`
	ImageCover      string    `json:"image_cover"`
	Price           int64     `json:"price"`
	DurationDays    int       `json:"duration_days"`
	MaxGroupSize    int       `json:"max_group_size"`
	Difficulty      string    `json:"difficulty"`
	RatingsAverage  float64   `json:"ratings_average"`
	RatingsQuantity int64     `json:"ratings_quantity"`
	CreatedAt       time.Time `json:"created_at"`
}

// Helper converter
func TourToResponse(tour *entity.Tour) TourResponse {
	return TourResponse{
		ID:              tour.ID.String(),
		Name:            tour.Name,
		Slug:            tour.Slug,
		Summary:         tour.Summary,
		Description:     tour.Description,
		ImageCover:      tour.ImageCover,
		Price:           tour.Price,
		DurationDays:    tour.DurationDays,
		MaxGroupSize:    tour.MaxGroupSize,
		Difficulty:      string(tour.Difficulty),
		RatingsAverage:  tour.RatingsAverage,
		RatingsQuantity: tour.RatingsQuantity,
		CreatedAt:       tour.CreatedAt,
	}
}
