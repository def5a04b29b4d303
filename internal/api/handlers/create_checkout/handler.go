package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	createCheckout "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_checkout"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid checkout request"
	msgBookingNotFound    = "booking not found"
	msgNotAnEvent         = "showings are free and cannot be paid for"
	msgBookingCancelled   = "a cancelled booking cannot be paid for"
	msgNothingToPay       = "this booking is already paid in full"
	msgProviderDown       = "payment provider is temporarily unavailable, please retry"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createCheckout.ErrInvalidInput):
			h.logger.Warn("POST /payments/checkout - Invalid input: booking_id=%d, purpose=%q", req.BookingID, req.Purpose)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCheckout.ErrBookingNotFound):
			h.logger.Warn("POST /payments/checkout - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createCheckout.ErrNotAnEvent):
			h.logger.Warn("POST /payments/checkout - Not an event: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgNotAnEvent)

		case errors.Is(err, createCheckout.ErrBookingCancelled):
			h.logger.Warn("POST /payments/checkout - Booking cancelled: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, createCheckout.ErrNothingToPay):
			h.logger.Warn("POST /payments/checkout - Nothing to pay: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgNothingToPay)

		case errors.Is(err, createCheckout.ErrPaymentProviderUnavailable):
			h.logger.Error("POST /payments/checkout - Payment provider unavailable: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusInternalServerError, msgProviderDown)

		default:
			h.logger.Error("POST /payments/checkout - Failed to create session: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/checkout - Session created: booking_id=%d, amount=%d", req.BookingID, result.AmountCents)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
