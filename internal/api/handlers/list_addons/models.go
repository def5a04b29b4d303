package list_addons

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// AddOnsResponse HTTP response model
type AddOnsResponse struct {
	AddOns []AddOnItem `json:"addOns"`
}

// AddOnItem позиция каталога
type AddOnItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	PriceCents   int64   `json:"priceCents"`
	DisplayOrder int     `json:"displayOrder"`
}

// FromDomain конвертирует позиции каталога в HTTP response
func FromDomain(items []domain.AddOn) *AddOnsResponse {
	out := &AddOnsResponse{AddOns: make([]AddOnItem, 0, len(items))}
	for _, item := range items {
		out.AddOns = append(out.AddOns, AddOnItem{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			PriceCents:   item.PriceCents,
			DisplayOrder: item.DisplayOrder,
		})
	}
	return out
}
