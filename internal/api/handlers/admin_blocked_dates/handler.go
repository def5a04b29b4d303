package admin_blocked_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgInvalidID          = "invalid blocked date id"
	msgAlreadyBlocked     = "this date is already blocked"
	msgNotFound           = "blocked date not found"
)

type Handler struct {
	repo     ScheduleRepository
	calendar *calendar.Calendar
	logger   Logger
}

func NewHandler(repo ScheduleRepository, cal *calendar.Calendar, logger Logger) *Handler {
	return &Handler{
		repo:     repo,
		calendar: cal,
		logger:   logger,
	}
}

// HandleCreate POST /api/v1/admin/blocked-dates
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := h.calendar.LocalDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid date: %q", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	blocked, err := h.repo.CreateBlockedDate(r.Context(), &domain.BlockedDate{
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrDateAlreadyBlocked) {
			h.logger.Warn("POST /admin/blocked-dates - Date already blocked: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyBlocked)
			return
		}
		h.logger.Error("POST /admin/blocked-dates - Failed to block date %s: %v", req.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Date blocked: id=%d, date=%s", blocked.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(blocked, h.calendar))
}

// HandleList GET /api/v1/admin/blocked-dates
// Отдаёт блокировки начиная с сегодняшнего дня площадки.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from := h.calendar.Today(time.Now())

	list, err := h.repo.ListBlockedDates(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed to list blocked dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(list, h.calendar))
}

// HandleDelete DELETE /api/v1/admin/blocked-dates/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/blocked-dates - Invalid id: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.repo.DeleteBlockedDate(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrBlockedDateNotFound) {
			h.logger.Warn("DELETE /admin/blocked-dates - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocked-dates - Failed to delete id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates - Date unblocked: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
