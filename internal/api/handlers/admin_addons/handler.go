package admin_addons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "invalid add-on id"
	msgNotFound           = "add-on not found"
)

type Handler struct {
	repo   CatalogRepository
	logger Logger
}

func NewHandler(repo CatalogRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// HandleCreate POST /api/v1/admin/addons
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req AddOnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/addons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /admin/addons - Invalid add-on: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.repo.Create(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.Error("POST /admin/addons - Failed to create add-on: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/addons - Add-on created: id=%d, name=%q", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}

// HandleList GET /api/v1/admin/addons
// Админская выдача включает неактивные позиции.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /admin/addons - Failed to list add-ons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(list))
}

// HandleUpdate PUT /api/v1/admin/addons/{id}
// Деактивация скрывает позицию из новых бронирований, но не трогает
// зафиксированные цены на существующих.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /admin/addons - Invalid id: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req AddOnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/addons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("PUT /admin/addons - Invalid add-on: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	addOn := req.ToDomain()
	addOn.ID = id

	if err := h.repo.Update(r.Context(), addOn); err != nil {
		if errors.Is(err, catalog.ErrAddOnNotFound) {
			h.logger.Warn("PUT /admin/addons - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PUT /admin/addons - Failed to update id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("PUT /admin/addons - Failed to reload id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/addons - Add-on updated: id=%d, active=%t", id, updated.Active)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(updated))
}
