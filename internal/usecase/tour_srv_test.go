package usecase

import (
	"context"
	"testing"

	"tour-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourService_CreateSlugsName(t *testing.T) {
	repo := newTestRepository()
	service := NewTourService(repo, testLogger)
	ctx := context.Background()

	resp, err := service.CreateTour(ctx, &request.CreateTourRequest{
		Name:         "The Sea Explorer",
		Summary:      "Exploring the jaw-dropping US east coast by foot and by boat",
		ImageCover:   "tour-2-cover.jpg",
		Price:        39700,
		DurationDays: 7,
		MaxGroupSize: 15,
		Difficulty:   "medium",
	})
	require.NoError(t, err)
	assert.Equal(t, "the-sea-explorer", resp.Slug)

	// Same name collides on the slug.
	_, err = service.CreateTour(ctx, &request.CreateTourRequest{
		Name:         "The Sea Explorer",
		Summary:      "Duplicate",
		ImageCover:   "tour-2-cover.jpg",
		Price:        100,
		DurationDays: 1,
		MaxGroupSize: 1,
		Difficulty:   "easy",
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestTourService_UpdatePartialFields(t *testing.T) {
	repo := newTestRepository()
	service := NewTourService(repo, testLogger)
	ctx := context.Background()

	tour := newTestTour(49900)
	require.NoError(t, repo.Tour.Create(ctx, tour))

	newPrice := int64(59900)
	resp, err := service.UpdateTour(ctx, tour.ID, &request.UpdateTourRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(59900), resp.Price)
	assert.Equal(t, tour.Name, resp.Name)
	assert.Equal(t, tour.Slug, resp.Slug)
}

func TestTourService_GetUnknownTour(t *testing.T) {
	service := NewTourService(newTestRepository(), testLogger)

	_, err := service.GetTour(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestTourService_ListPaginates(t *testing.T) {
	repo := newTestRepository()
	service := NewTourService(repo, testLogger)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		tour := newTestTour(int64(1000 * (i + 1)))
		tour.Base.ID = uuid.New()
		tour.Slug = tour.Slug + "-" + tour.ID.String()
		require.NoError(t, repo.Tour.Create(ctx, tour))
	}

	page, err := service.ListTours(ctx, &request.PaginatedRequest{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
