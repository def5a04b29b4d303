package get_managed_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/tokens"
)

const (
	msgTokenNotFound = "booking not found"
	msgTokenExpired  = "this management link has expired"
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

// Handle GET /api/v1/manage/bookings/{token}
// Токен - bearer-секрет, в логи не попадает ни целиком, ни частично.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	booking, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrTokenNotFound):
			h.logger.Warn("GET /manage/bookings - Unknown management token")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, tokens.ErrTokenExpired):
			h.logger.Warn("GET /manage/bookings - Expired management token")
			handlers.RespondGone(w, msgTokenExpired)

		default:
			h.logger.Error("GET /manage/bookings - Failed to resolve token: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /manage/bookings - Booking resolved: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingView(booking, h.calendar))
}
