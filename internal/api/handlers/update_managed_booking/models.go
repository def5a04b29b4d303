package update_managed_booking

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
)

// UpdateBookingRequest HTTP request model. Все поля опциональны:
// отсутствующее поле не изменяется.
type UpdateBookingRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	TableCount    *int    `json:"tableCount,omitempty"`
	ChairCount    *int    `json:"chairCount,omitempty"`
	SetupNotes    *string `json:"setupNotes,omitempty"`

	// AddOns != nil означает полную замену доп. позиций с пересчётом итога
	AddOns []AddOnSelection `json:"addOns,omitempty"`
}

// AddOnSelection выбранная доп. позиция
type AddOnSelection struct {
	AddOnID  int64 `json:"addOnId"`
	Quantity int   `json:"quantity"`
}

// ToUpdateParams конвертирует HTTP запрос в параметры сервиса
func (r *UpdateBookingRequest) ToUpdateParams() bookings.UpdateParams {
	params := bookings.UpdateParams{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
		TableCount:    r.TableCount,
		ChairCount:    r.ChairCount,
		SetupNotes:    r.SetupNotes,
	}
	if r.AddOns != nil {
		params.ReplaceAddOns = true
		params.AddOns = make([]pricing.AddOnSelection, 0, len(r.AddOns))
		for _, sel := range r.AddOns {
			params.AddOns = append(params.AddOns, pricing.AddOnSelection{
				AddOnID:  sel.AddOnID,
				Quantity: sel.Quantity,
			})
		}
	}
	return params
}
