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

type TourService interface {
	ListTours(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
	GetTour(ctx context.Context, id uuid.UUID) (*response.TourResponse, error)
	GetTourBySlug(ctx context.Context, slug string) (*response.TourResponse, error)
	CreateTour(ctx context.Context, req *request.CreateTourRequest) (*response.TourResponse, error)
	UpdateTour(ctx context.Context, id uuid.UUID, req *request.UpdateTourRequest) (*response.TourResponse, error)
	DeleteTour(ctx context.Context, id uuid.UUID) error
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) ListTours(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	tours, err := s.repo.Tour.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to list tours", err)
	}

	total, err := s.repo.Tour.Count(ctx)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to count tours", err)
	}

	items := make([]response.TourResponse, 0, len(tours))
	for _, tour := range tours {
		items = append(items, response.TourToResponse(tour))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *tourService) GetTour(ctx context.Context, id uuid.UUID) (*response.TourResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) GetTourBySlug(ctx context.Context, slug string) (*response.TourResponse, error) {
	tour, err := s.repo.Tour.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) CreateTour(ctx context.Context, req *request.CreateTourRequest) (*response.TourResponse, error) {
	slug := utils.Slugify(req.Name)
	existing, err := s.repo.Tour.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to check tour slug", err)
	}
	if existing != nil {
		return nil, newError(KindConflict, "A tour with this name already exists")
	}

	now := time.Now()
	tour := &entity.Tour{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Slug:         slug,
		Summary:      req.Summary,
		Description:  req.Description,
		ImageCover:   req.ImageCover,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   entity.TourDifficulty(req.Difficulty),
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		return nil, wrapError(KindUnknown, "Failed to create tour", err)
	}

	s.log.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("slug", tour.Slug),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) UpdateTour(ctx context.Context, id uuid.UUID, req *request.UpdateTourRequest) (*response.TourResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	if req.Name != nil && *req.Name != tour.Name {
		tour.Name = *req.Name
		tour.Slug = utils.Slugify(*req.Name)
	}
	if req.Summary != nil {
		tour.Summary = *req.Summary
	}
	if req.Description != nil {
		tour.Description = req.Description
	}
	if req.ImageCover != nil {
		tour.ImageCover = *req.ImageCover
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.DurationDays != nil {
		tour.DurationDays = *req.DurationDays
	}
	if req.MaxGroupSize != nil {
		tour.MaxGroupSize = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		tour.Difficulty = entity.TourDifficulty(*req.Difficulty)
	}
	tour.UpdatedAt = time.Now()

	if err := s.repo.Tour.Update(ctx, tour); err != nil {
		return nil, wrapError(KindUnknown, "Failed to update tour", err)
	}

	s.log.Info("Tour updated", zap.String("tour_id", id.String()))

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) DeleteTour(ctx context.Context, id uuid.UUID) error {
	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return newError(KindNotFound, "Tour not found")
	}

	if err := s.repo.Tour.Delete(ctx, id); err != nil {
		return wrapError(KindUnknown, "Failed to delete tour", err)
	}

	return nil
}
