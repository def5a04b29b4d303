package admin_showing_config

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

const (
	msgInvalidRequestBody = "invalid request body"
)

// ShowingConfigRequest HTTP request model
type ShowingConfigRequest struct {
	DefaultDurationMinutes int `json:"defaultDurationMinutes"`
	MaxSlotsPerWindow      int `json:"maxSlotsPerWindow"`
}

// ShowingConfigResponse HTTP response model
type ShowingConfigResponse struct {
	DefaultDurationMinutes int `json:"defaultDurationMinutes"`
	MaxSlotsPerWindow      int `json:"maxSlotsPerWindow"`
}

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

// HandleGet GET /api/v1/admin/showing-config
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.repo.GetShowingConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/showing-config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ShowingConfigResponse{
		DefaultDurationMinutes: cfg.DefaultDurationMinutes,
		MaxSlotsPerWindow:      cfg.MaxSlotsPerWindow,
	})
}

// HandleUpdate PUT /api/v1/admin/showing-config
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ShowingConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/showing-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.DefaultDurationMinutes < domain.MinShowingDurationMinutes ||
		req.DefaultDurationMinutes > domain.MaxShowingDurationMinutes {
		h.logger.Warn("PUT /admin/showing-config - Invalid duration: %d", req.DefaultDurationMinutes)
		handlers.RespondBadRequest(w, fmt.Sprintf("defaultDurationMinutes must be between %d and %d",
			domain.MinShowingDurationMinutes, domain.MaxShowingDurationMinutes))
		return
	}
	if req.MaxSlotsPerWindow < 1 {
		h.logger.Warn("PUT /admin/showing-config - Invalid max slots: %d", req.MaxSlotsPerWindow)
		handlers.RespondBadRequest(w, "maxSlotsPerWindow must be at least 1")
		return
	}

	cfg := &domain.ShowingConfig{
		Key:                    domain.ShowingConfigKey,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		MaxSlotsPerWindow:      req.MaxSlotsPerWindow,
	}
	if err := h.repo.UpsertShowingConfig(r.Context(), cfg); err != nil {
		h.logger.Error("PUT /admin/showing-config - Failed to update config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/showing-config - Config updated: duration=%d, max_slots=%d",
		req.DefaultDurationMinutes, req.MaxSlotsPerWindow)
	handlers.RespondJSON(w, http.StatusOK, ShowingConfigResponse{
		DefaultDurationMinutes: cfg.DefaultDurationMinutes,
		MaxSlotsPerWindow:      cfg.MaxSlotsPerWindow,
	})
}
