package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidTime          = "invalid time format, expected HH:MM"
	msgInvalidInput         = "invalid booking data"
	msgDateBlocked          = "the venue is closed on the selected date"
	msgDateAlreadyBooked    = "the selected date already has an event booking"
	msgOutsideShowingWindow = "the selected time is outside showing hours"
	msgShowingSlotTaken     = "the selected showing slot is already taken"
	msgPricingRejected      = "the selected times do not meet rental rules"
	msgContractNotAccepted  = "the rental contract must be accepted"
)

type Handler struct {
	useCase  CreateBookingUseCase
	calendar *calendar.Calendar
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, cal *calendar.Calendar, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: cal,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: date=%s", req.EventDate)
			handlers.RespondConflict(w, msgDateBlocked)

		case errors.Is(err, createBooking.ErrDateAlreadyBooked):
			h.logger.Warn("POST /bookings - Date already booked: date=%s", req.EventDate)
			handlers.RespondConflict(w, msgDateAlreadyBooked)

		case errors.Is(err, createBooking.ErrShowingSlotTaken):
			h.logger.Warn("POST /bookings - Showing slot taken: date=%s time=%s", req.EventDate, req.AppointmentTime)
			handlers.RespondConflict(w, msgShowingSlotTaken)

		case errors.Is(err, createBooking.ErrOutsideShowingWindow):
			h.logger.Warn("POST /bookings - Outside showing window: date=%s time=%s", req.EventDate, req.AppointmentTime)
			handlers.RespondBadRequest(w, msgOutsideShowingWindow)

		case errors.Is(err, createBooking.ErrPricingRejected):
			h.logger.Warn("POST /bookings - Pricing rejected: date=%s, error=%v", req.EventDate, err)
			handlers.RespondBadRequest(w, msgPricingRejected)

		case errors.Is(err, createBooking.ErrContractNotAccepted):
			h.logger.Warn("POST /bookings - Contract not accepted: date=%s", req.EventDate)
			handlers.RespondBadRequest(w, msgContractNotAccepted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, error=%v", req.EventDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.calendar)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, type=%s, date=%s",
		result.BookingID, req.BookingType, req.EventDate)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
