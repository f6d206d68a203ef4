package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	TourID  uuid.UUID `db:"tour_id"`
	Rating  int       `db:"rating"`
	Comment *string   `db:"comment"`
}
