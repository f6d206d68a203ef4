package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	ListMyBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListAllBookings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to list bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to count bookings", err)
	}

	return response.NewPaginatedResponse(toResponses(bookings), page.Page, page.Limit(), total), nil
}

func (s *bookingService) ListAllBookings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to list bookings", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to count bookings", err)
	}

	return response.NewPaginatedResponse(toResponses(bookings), page.Page, page.Limit(), total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, newError(KindNotFound, "Booking not found")
	}

	resp := response.BookingToResponse(booking, s.tourName(ctx, booking.TourID))
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, newError(KindNotFound, "Booking not found")
	}

	if req.Price != nil {
		booking.Price = *req.Price
	}
	if req.Paid != nil {
		booking.Paid = *req.Paid
	}
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, wrapError(KindUnknown, "Failed to update booking", err)
	}

	s.log.Info("Booking updated", zap.String("booking_id", id.String()))

	resp := response.BookingToResponse(booking, s.tourName(ctx, booking.TourID))
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return wrapError(KindUnknown, "Failed to load booking", err)
	}
	if booking == nil {
		return newError(KindNotFound, "Booking not found")
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		return wrapError(KindUnknown, "Failed to delete booking", err)
	}

	return nil
}

// List reads come back joined with the tour name, so no per-booking
// tour lookup happens here.
func toResponses(bookings []*entity.BookingWithTour) []response.BookingResponse {
	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.BookingToResponse(&booking.Booking, booking.TourName))
	}
	return items
}

func (s *bookingService) tourName(ctx context.Context, tourID uuid.UUID) string {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil || tour == nil {
		return ""
	}
	return tour.Name
}
