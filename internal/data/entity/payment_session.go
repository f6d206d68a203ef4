package entity

import (
	"github.com/google/uuid"
)

type PaymentSessionStatus string

const (
	PaymentSessionPending  PaymentSessionStatus = "pending"
	PaymentSessionComplete PaymentSessionStatus = "complete"
	PaymentSessionExpired  PaymentSessionStatus = "expired"
	PaymentSessionFailed   PaymentSessionStatus = "failed"
)

// PaymentSession records a provider checkout session. TourID, UserID and
// Amount are frozen at creation time: later tour price changes must not
// affect a session that is already out with the provider.
type PaymentSession struct {
	Base
	SessionID   string               `db:"session_id"`
	TourID      uuid.UUID            `db:"tour_id"`
	UserID      uuid.UUID            `db:"user_id"`
	Amount      int64                `db:"amount"`
	Status      PaymentSessionStatus `db:"status"`
	CheckoutURL string               `db:"checkout_url"`
}
