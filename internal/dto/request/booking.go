package request

type UpdateBookingRequest struct {
	Price *int64 `json:"price,omitempty" validate:"omitempty,min=1"`
	Paid  *bool  `json:"paid,omitempty"`
}
