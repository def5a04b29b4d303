package update_managed_booking

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
	msgInvalidRequestBody = "invalid request body"
	msgTokenNotFound      = "booking not found"
	msgTokenExpired       = "this management link has expired"
	msgBookingCancelled   = "a cancelled booking cannot be edited"
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

// Handle PATCH /api/v1/manage/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /manage/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.UpdateByToken(r.Context(), token, req.ToUpdateParams())
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrTokenNotFound):
			h.logger.Warn("PATCH /manage/bookings - Unknown management token")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, tokens.ErrTokenExpired):
			h.logger.Warn("PATCH /manage/bookings - Expired management token")
			handlers.RespondGone(w, msgTokenExpired)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("PATCH /manage/bookings - Booking is cancelled")
			handlers.RespondConflict(w, msgBookingCancelled)

		default:
			h.logger.Error("PATCH /manage/bookings - Failed to update booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /manage/bookings - Booking updated: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingView(booking, h.calendar))
}
