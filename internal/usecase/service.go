package usecase

import (
	"context"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/mailer"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// PaymentProvider is the slice of the checkout provider API the services
// need. pkg/payment.Client satisfies it.
type PaymentProvider interface {
	CreateSession(ctx context.Context, req *payment.CreateSessionRequest) (*payment.Session, error)
	GetSession(ctx context.Context, sessionID string) (*payment.Session, error)
}

// EmailSender delivers transactional mail. Sends never block or fail a
// request; implementations log failures internally.
type EmailSender interface {
	SendWelcome(name, email string)
	SendPasswordReset(name, email, resetURL string)
}

type Service struct {
	Auth     AuthService
	User     UserService
	Tour     TourService
	Review   ReviewService
	Booking  BookingService
	Checkout CheckoutService
}

func NewService(repo *repository.Repository, provider PaymentProvider, mail EmailSender, cfg *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, mail, cfg, log),
		User:     NewUserService(repo, log),
		Tour:     NewTourService(repo, log),
		Review:   NewReviewService(repo, log),
		Booking:  NewBookingService(repo, log),
		Checkout: NewCheckoutService(repo, provider, cfg, log),
	}
}

var _ PaymentProvider = (*payment.Client)(nil)
var _ EmailSender = (*mailer.Mailer)(nil)
