package entity

import (
	"github.com/google/uuid"
)

// Booking is created exactly once per completed payment session. The
// bookings table carries UNIQUE (session_id); that constraint, not any
// application lock, serializes concurrent reconciliation attempts.
type Booking struct {
	Base
	TourID    uuid.UUID `db:"tour_id"`
	UserID    uuid.UUID `db:"user_id"`
	SessionID string    `db:"session_id"`
	Price     int64     `db:"price"`
	Paid      bool      `db:"paid"`
}

// BookingWithTour is a booking row joined with its tour's name for list
// reads, so listings don't need a lookup per booking.
type BookingWithTour struct {
	Booking
	TourName string `db:"tour_name"`
}
