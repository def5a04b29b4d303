package admin_record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgBookingNotFound    = "booking not found"
	msgInvalidPayment     = "invalid payment method or amount"
	msgBookingCancelled   = "a cancelled booking cannot accept payment"
)

// RecordPaymentRequest HTTP request model. Метод - один из
// "cash", "check", "comp", "other"; stripe-платежи идут через checkout.
type RecordPaymentRequest struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amountCents"`
}

type Handler struct {
	service  BookingsService
	calendar *calendar.Calendar
	logger   Logger
}

func NewHandler(service BookingsService, cal *calendar.Calendar, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: cal,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /admin/bookings/payments - Invalid booking id: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.RecordManualPayment(r.Context(), bookingID, domain.PaymentMethod(req.Method), req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/payments - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidPayment):
			h.logger.Warn("POST /admin/bookings/payments - Invalid payment: booking_id=%d, method=%q, amount=%d",
				bookingID, req.Method, req.AmountCents)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("POST /admin/bookings/payments - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		default:
			h.logger.Error("POST /admin/bookings/payments - Failed to record payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/payments - Payment recorded: booking_id=%d, amount=%d, paid_in_full=%t",
		bookingID, req.AmountCents, booking.IsPaidInFull())
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingView(booking, h.calendar))
}
