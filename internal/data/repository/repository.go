package repository

import (
	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	PasswordReset  PasswordResetRepository
	Tour           TourRepository
	Review         ReviewRepository
	PaymentSession PaymentSessionRepository
	Booking        BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		PasswordReset:  NewPasswordResetRepository(db, log),
		Tour:           NewTourRepository(db, log),
		Review:         NewReviewRepository(db, log),
		PaymentSession: NewPaymentSessionRepository(db, log),
		Booking:        NewBookingRepository(db, log),
	}
}
