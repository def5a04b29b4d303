package admin_addons

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// AddOnRequest HTTP request model создания/изменения позиции каталога
type AddOnRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	PriceCents   int64   `json:"priceCents"`
	Active       *bool   `json:"active,omitempty"`
	DisplayOrder int     `json:"displayOrder,omitempty"`
}

// AddOnResponse HTTP response model
type AddOnResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	PriceCents   int64   `json:"priceCents"`
	Active       bool    `json:"active"`
	DisplayOrder int     `json:"displayOrder"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// AddOnsListResponse HTTP response model списка
type AddOnsListResponse struct {
	AddOns []AddOnResponse `json:"addOns"`
}

// Validate проверяет поля запроса
func (r *AddOnRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > domain.MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", domain.MaxNameLength)
	}
	if r.PriceCents < 0 {
		return fmt.Errorf("priceCents must not be negative")
	}
	return nil
}

// ToDomain строит доменную позицию каталога
func (r *AddOnRequest) ToDomain() *domain.AddOn {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.AddOn{
		Name:         r.Name,
		Description:  r.Description,
		PriceCents:   r.PriceCents,
		Active:       active,
		DisplayOrder: r.DisplayOrder,
	}
}

// FromDomain конвертирует позицию каталога в HTTP response
func FromDomain(addOn *domain.AddOn) AddOnResponse {
	return AddOnResponse{
		ID:           addOn.ID,
		Name:         addOn.Name,
		Description:  addOn.Description,
		PriceCents:   addOn.PriceCents,
		Active:       addOn.Active,
		DisplayOrder: addOn.DisplayOrder,
		CreatedAt:    addOn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    addOn.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список позиций в HTTP response
func FromDomainList(list []domain.AddOn) *AddOnsListResponse {
	out := &AddOnsListResponse{AddOns: make([]AddOnResponse, 0, len(list))}
	for i := range list {
		out.AddOns = append(out.AddOns, FromDomain(&list[i]))
	}
	return out
}
