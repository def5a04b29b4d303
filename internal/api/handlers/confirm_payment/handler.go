package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	confirmPayment "github.com/m04kA/SMC-VenueBookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid payment confirmation request"
	msgSessionNotFound    = "checkout session not found"
	msgSessionNotPaid     = "the checkout session has not been paid"
	msgBookingNotFound    = "booking not found"
	msgNotAnEvent         = "showings are free and carry no payment"
	msgBookingCancelled   = "the booking was cancelled and cannot accept payment"
	msgProviderDown       = "payment provider is temporarily unavailable, please retry"
)

type Handler struct {
	useCase  ConfirmPaymentUseCase
	calendar *calendar.Calendar
	logger   Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, cal *calendar.Calendar, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: cal,
		logger:   logger,
	}
}

// Handle POST /api/v1/payments/confirm
// Идемпотентна: повторное подтверждение той же сессии возвращает тот же
// результат без повторного начисления.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmPayment.ErrSessionNotFound):
			h.logger.Warn("POST /payments/confirm - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, confirmPayment.ErrSessionNotPaid):
			h.logger.Warn("POST /payments/confirm - Session not paid: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgSessionNotPaid)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/confirm - Booking not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrNotAnEvent):
			h.logger.Warn("POST /payments/confirm - Not an event: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgNotAnEvent)

		case errors.Is(err, confirmPayment.ErrBookingCancelled):
			h.logger.Warn("POST /payments/confirm - Booking cancelled: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, confirmPayment.ErrPaymentProviderUnavailable):
			h.logger.Error("POST /payments/confirm - Payment provider unavailable: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusInternalServerError, msgProviderDown)

		default:
			h.logger.Error("POST /payments/confirm - Failed to confirm payment: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/confirm - Payment confirmed: session_id=%s, booking_id=%d",
		req.SessionID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.calendar))
}
