package admin_list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
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

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := FilterFromQuery(r.URL.Query(), h.calendar)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(list, h.calendar))
}
