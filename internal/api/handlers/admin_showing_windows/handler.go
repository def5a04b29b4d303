package admin_showing_windows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid showing window id"
	msgNotFound           = "showing window not found"
)

type Handler struct {
	repo   ScheduleRepository
	logger Logger
}

func NewHandler(repo ScheduleRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// HandleCreate POST /api/v1/admin/showing-windows
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/showing-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	window, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /admin/showing-windows - Invalid window: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.repo.CreateWindow(r.Context(), window)
	if err != nil {
		h.logger.Error("POST /admin/showing-windows - Failed to create window: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/showing-windows - Window created: id=%d, day=%d, %s-%s",
		created.ID, created.DayOfWeek, created.StartTime, created.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}

// HandleList GET /api/v1/admin/showing-windows
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListWindows(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/showing-windows - Failed to list windows: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(list))
}

// HandleUpdate PUT /api/v1/admin/showing-windows/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /admin/showing-windows - Invalid id: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/showing-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	window, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /admin/showing-windows - Invalid window: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	window.ID = id

	if err := h.repo.UpdateWindow(r.Context(), window); err != nil {
		if errors.Is(err, schedule.ErrWindowNotFound) {
			h.logger.Warn("PUT /admin/showing-windows - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PUT /admin/showing-windows - Failed to update id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/showing-windows - Window updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(window))
}

// HandleDelete DELETE /api/v1/admin/showing-windows/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/showing-windows - Invalid id: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.repo.DeleteWindow(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrWindowNotFound) {
			h.logger.Warn("DELETE /admin/showing-windows - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/showing-windows - Failed to delete id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/showing-windows - Window deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
