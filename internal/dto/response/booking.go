package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tour_id"`
	TourName  string    `json:"tour_name,omitempty"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Price     int64     `json:"price"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking, tourName string) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		TourID:    booking.TourID.String(),
		TourName:  tourName,
		UserID:    booking.UserID.String(),
		SessionID: booking.SessionID,
		Price:     booking.Price,
		Paid:      booking.Paid,
		CreatedAt: booking.CreatedAt,
	}
}
