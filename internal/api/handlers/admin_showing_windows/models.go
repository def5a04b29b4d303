package admin_showing_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// WindowRequest HTTP request model создания/изменения окна
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Enabled   *bool  `json:"enabled,omitempty"`
}

// WindowResponse HTTP response model
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// WindowsListResponse HTTP response model списка
type WindowsListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// ToDomain валидирует запрос и строит доменное окно
func (r *WindowRequest) ToDomain() (*domain.ShowingAvailability, error) {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return nil, fmt.Errorf("dayOfWeek must be 0..6, got %d", r.DayOfWeek)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("startTime %s must be before endTime %s", start, end)
	}

	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &domain.ShowingAvailability{
		DayOfWeek: r.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Enabled:   enabled,
	}, nil
}

// FromDomain конвертирует окно в HTTP response
func FromDomain(window *domain.ShowingAvailability) WindowResponse {
	return WindowResponse{
		ID:        window.ID,
		DayOfWeek: window.DayOfWeek,
		StartTime: window.StartTime.String(),
		EndTime:   window.EndTime.String(),
		Enabled:   window.Enabled,
		CreatedAt: window.CreatedAt.Format(time.RFC3339),
		UpdatedAt: window.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список окон в HTTP response
func FromDomainList(list []*domain.ShowingAvailability) *WindowsListResponse {
	out := &WindowsListResponse{Windows: make([]WindowResponse, 0, len(list))}
	for _, window := range list {
		out.Windows = append(out.Windows, FromDomain(window))
	}
	return out
}
