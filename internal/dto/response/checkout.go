package response

import (
	"tour-booking/internal/data/entity"
)

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	TourID      string `json:"tour_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
}

// ReconcileResponse carries either the still-pending session status or the
// booking once the session completed. Repeated calls for a completed
// session always return the same booking.
type ReconcileResponse struct {
	Status  string           `json:"status"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// Helper converter
func PaymentSessionToResponse(session *entity.PaymentSession) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		SessionID:   session.SessionID,
		CheckoutURL: session.CheckoutURL,
		TourID:      session.TourID.String(),
		Amount:      session.Amount,
		Status:      string(session.Status),
	}
}
