package get_showing_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	getShowingSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_showing_slots"
)

const (
	msgInvalidDate = "invalid or missing date, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetShowingSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetShowingSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/showings?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getShowingSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getShowingSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/showings - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/showings - Failed to list slots for %s: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
