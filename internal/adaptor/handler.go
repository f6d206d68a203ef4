package adaptor

import (
	"net/http"
	"strings"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Tour     *TourHandler
	Review   *ReviewHandler
	Booking  *BookingHandler
	Checkout *CheckoutHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Tour:     NewTourHandler(service.Tour, log),
		Review:   NewReviewHandler(service.Review, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
	}
}

// handleServiceError maps service errors to HTTP responses. Typed errors
// carry their kind; anything untyped falls back to message matching and
// finally to a 500 without leaking the internal error text.
func handleServiceError(w http.ResponseWriter, err error) {
	message := usecase.MessageOf(err)

	switch usecase.KindOf(err) {
	case usecase.KindInvalid:
		utils.ResponseBadRequest(w, message, nil)
	case usecase.KindUnauthorized:
		utils.ResponseUnauthorized(w, message)
	case usecase.KindForbidden:
		utils.ResponseForbidden(w, message)
	case usecase.KindNotFound:
		utils.ResponseNotFound(w, message)
	case usecase.KindConflict:
		utils.ResponseConflict(w, message)
	case usecase.KindUpstream:
		utils.ResponseBadGateway(w, message)
	default:
		if strings.Contains(err.Error(), "not found") {
			utils.ResponseNotFound(w, message)
			return
		}
		utils.ResponseInternalError(w, "Internal server error")
	}
}
