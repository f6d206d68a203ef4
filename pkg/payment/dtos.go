package payment

// Provider-side checkout session statuses
const (
	StatusOpen     = "open"
	StatusComplete = "complete"
	StatusExpired  = "expired"
)

type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
}

type CreateSessionRequest struct {
	CustomerEmail     string     `json:"customer_email"`
	ClientReferenceID string     `json:"client_reference_id"`
	LineItems         []LineItem `json:"line_items"`
	SuccessURL        string     `json:"success_url"`
	CancelURL         string     `json:"cancel_url"`
}

type Session struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	AmountTotal int64  `json:"amount_total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
