package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, userID, tourID uuid.UUID) (*response.CheckoutSessionResponse, error)
	ReconcileSession(ctx context.Context, userID uuid.UUID, callerRole, sessionID string) (*response.ReconcileResponse, error)
}

type checkoutService struct {
	repo     *repository.Repository
	provider PaymentProvider
	cfg      *utils.Config
	log      *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, provider PaymentProvider, cfg *utils.Config, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		log:      log.With(zap.String("service", "checkout")),
	}
}

// CreateCheckoutSession opens a provider checkout session for a tour. The
// tour price is copied into the session at this moment; later price edits
// on the tour never change what an open session charges or what its
// eventual booking records.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, userID, tourID uuid.UUID) (*response.CheckoutSessionResponse, error) {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load tour", err)
	}
	if tour == nil {
		return nil, newError(KindNotFound, "Tour not found")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load user", err)
	}
	if user == nil {
		return nil, newError(KindUnauthorized, "User not found")
	}

	description := tour.Summary
	if tour.Description != nil {
		description = *tour.Description
	}

	providerReq := &payment.CreateSessionRequest{
		CustomerEmail:     user.Email,
		ClientReferenceID: tourID.String(),
		LineItems: []payment.LineItem{
			{
				Name:        fmt.Sprintf("%s Tour", tour.Name),
				Description: description,
				ImageURL:    tour.ImageCover,
				Amount:      tour.Price,
				Currency:    s.cfg.Payment.Currency,
				Quantity:    1,
			},
		},
		SuccessURL: fmt.Sprintf("%s/my-bookings?session_id={CHECKOUT_SESSION_ID}", s.cfg.App.FrontURL),
		CancelURL:  fmt.Sprintf("%s/tours/%s", s.cfg.App.FrontURL, tour.Slug),
	}

	providerSession, err := s.provider.CreateSession(ctx, providerReq)
	if err != nil {
		s.log.Error("Provider session creation failed",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, wrapError(KindUpstream, "Payment provider is unavailable", err)
	}

	now := time.Now()
	session := &entity.PaymentSession{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SessionID:   providerSession.ID,
		TourID:      tourID,
		UserID:      userID,
		Amount:      tour.Price,
		Status:      entity.PaymentSessionPending,
		CheckoutURL: providerSession.URL,
	}

	if err := s.repo.PaymentSession.Create(ctx, session); err != nil {
		return nil, wrapError(KindUnknown, "Failed to record payment session", err)
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", session.SessionID),
		zap.String("tour_id", tourID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("amount", session.Amount),
	)

	resp := response.PaymentSessionToResponse(session)
	return &resp, nil
}

// ReconcileSession polls the provider for the session's status and, when
// the payment completed, ensures exactly one booking exists for it. Only
// the session's owner or an admin may reconcile. The call is safe to
// repeat: every invocation for a completed session returns the same
// booking. Concurrent invocations are serialized by the
// UNIQUE (session_id) constraint on bookings, not by any in-process lock.
func (s *checkoutService) ReconcileSession(ctx context.Context, userID uuid.UUID, callerRole, sessionID string) (*response.ReconcileResponse, error) {
	session, err := s.repo.PaymentSession.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to load payment session", err)
	}
	if session == nil {
		return nil, newError(KindNotFound, "Payment session not found")
	}
	if session.UserID != userID && callerRole != string(entity.RoleAdmin) {
		return nil, newError(KindForbidden, "Payment session belongs to another user")
	}

	// A session we already marked complete never goes back to the
	// provider; the booking is the durable answer.
	if session.Status == entity.PaymentSessionComplete {
		return s.completedResponse(ctx, session)
	}

	providerSession, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		s.log.Error("Provider session lookup failed",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, wrapError(KindUpstream, "Payment provider is unavailable", err)
	}

	status := mapProviderStatus(providerSession.Status)

	if status != entity.PaymentSessionComplete {
		if status != session.Status {
			if err := s.repo.PaymentSession.UpdateStatus(ctx, sessionID, status); err != nil {
				return nil, wrapError(KindUnknown, "Failed to update session status", err)
			}
		}
		return &response.ReconcileResponse{Status: string(status)}, nil
	}

	booking, err := s.ensureBooking(ctx, session)
	if err != nil {
		return nil, err
	}

	// Status flips to complete only after the booking exists, so a crash
	// between the two writes re-runs the booking path on the next poll.
	if err := s.repo.PaymentSession.UpdateStatus(ctx, sessionID, entity.PaymentSessionComplete); err != nil {
		return nil, wrapError(KindUnknown, "Failed to update session status", err)
	}

	bookingResp := response.BookingToResponse(booking, s.tourName(ctx, booking.TourID))
	return &response.ReconcileResponse{
		Status:  string(entity.PaymentSessionComplete),
		Booking: &bookingResp,
	}, nil
}

// ensureBooking inserts the booking for a completed session, or returns
// the existing one. On a duplicate-session insert the concurrent winner's
// row is re-read and returned.
func (s *checkoutService) ensureBooking(ctx context.Context, session *entity.PaymentSession) (*entity.Booking, error) {
	existing, err := s.repo.Booking.FindBySessionID(ctx, session.SessionID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to look up booking", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TourID:    session.TourID,
		UserID:    session.UserID,
		SessionID: session.SessionID,
		Price:     session.Amount,
		Paid:      true,
	}

	err = s.repo.Booking.Create(ctx, booking)
	if err == nil {
		s.log.Info("Booking created",
			zap.String("booking_id", booking.ID.String()),
			zap.String("session_id", session.SessionID),
			zap.Int64("price", booking.Price),
		)
		return booking, nil
	}

	if errors.Is(err, repository.ErrDuplicateSession) {
		winner, findErr := s.repo.Booking.FindBySessionID(ctx, session.SessionID)
		if findErr != nil {
			return nil, wrapError(KindUnknown, "Failed to look up booking", findErr)
		}
		if winner == nil {
			// Unique violation but no row: the winner's transaction has
			// not committed yet or was rolled back. The next poll settles it.
			return nil, wrapError(KindConflict, "Booking is being finalized, retry shortly", err)
		}
		return winner, nil
	}

	return nil, wrapError(KindUnknown, "Failed to create booking", err)
}

func (s *checkoutService) completedResponse(ctx context.Context, session *entity.PaymentSession) (*response.ReconcileResponse, error) {
	booking, err := s.repo.Booking.FindBySessionID(ctx, session.SessionID)
	if err != nil {
		return nil, wrapError(KindUnknown, "Failed to look up booking", err)
	}
	if booking == nil {
		// Should not happen: status only becomes complete after the
		// booking insert. Self-heal by re-running the booking path.
		booking, err = s.ensureBooking(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	bookingResp := response.BookingToResponse(booking, s.tourName(ctx, booking.TourID))
	return &response.ReconcileResponse{
		Status:  string(entity.PaymentSessionComplete),
		Booking: &bookingResp,
	}, nil
}

func (s *checkoutService) tourName(ctx context.Context, tourID uuid.UUID) string {
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil || tour == nil {
		return ""
	}
	return tour.Name
}

func mapProviderStatus(providerStatus string) entity.PaymentSessionStatus {
	switch providerStatus {
	case payment.StatusOpen:
		return entity.PaymentSessionPending
	case payment.StatusComplete:
		return entity.PaymentSessionComplete
	case payment.StatusExpired:
		return entity.PaymentSessionExpired
	default:
		return entity.PaymentSessionFailed
	}
}
