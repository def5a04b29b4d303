package list_addons

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

type Handler struct {
	catalog CatalogRepository
	logger  Logger
}

func NewHandler(catalog CatalogRepository, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/addons
// Публичная выдача: только активные позиции.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /addons - Failed to list add-ons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(items))
}
