package cancel_managed_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/tokens"
)

const (
	msgTokenNotFound    = "booking not found"
	msgTokenExpired     = "this management link has expired"
	msgAlreadyCancelled = "this booking is already cancelled"
)

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

// Handle POST /api/v1/manage/bookings/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	booking, err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrTokenNotFound):
			h.logger.Warn("POST /manage/bookings/cancel - Unknown management token")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, tokens.ErrTokenExpired):
			h.logger.Warn("POST /manage/bookings/cancel - Expired management token")
			handlers.RespondGone(w, msgTokenExpired)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("POST /manage/bookings/cancel - Booking already cancelled")
			handlers.RespondConflict(w, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /manage/bookings/cancel - Failed to cancel booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /manage/bookings/cancel - Booking cancelled: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingView(booking, h.calendar))
}
