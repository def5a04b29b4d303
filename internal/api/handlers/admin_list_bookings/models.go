package admin_list_bookings

import (
	"fmt"
	"net/url"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingsListResponse HTTP response model
type BookingsListResponse struct {
	Bookings []*handlers.BookingView `json:"bookings"`
	Total    int                     `json:"total"`
}

// FilterFromQuery строит фильтр выборки из query-параметров.
// Пустые параметры означают отсутствие ограничения.
func FilterFromQuery(query url.Values, cal *calendar.Calendar) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if raw := query.Get("type"); raw != "" {
		bookingType := domain.BookingType(raw)
		if !bookingType.IsValid() {
			return filter, fmt.Errorf("unknown booking type %q", raw)
		}
		filter.BookingType = &bookingType
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("unknown status %q", raw)
		}
	}

	if raw := query.Get("from"); raw != "" {
		from, err := cal.LocalDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid from date: %w", err)
		}
		filter.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := cal.LocalDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid to date: %w", err)
		}
		filter.EndDate = &to
	}

	filter.IncludeCancelled = query.Get("includeCancelled") == "true"

	return filter, nil
}

// FromDomain конвертирует выборку в HTTP response
func FromDomain(list []*domain.Booking, cal *calendar.Calendar) *BookingsListResponse {
	out := &BookingsListResponse{
		Bookings: make([]*handlers.BookingView, 0, len(list)),
		Total:    len(list),
	}
	for _, booking := range list {
		out.Bookings = append(out.Bookings, handlers.NewBookingView(booking, cal))
	}
	return out
}
