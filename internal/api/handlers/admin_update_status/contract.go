package admin_update_status

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type BookingsService interface {
	UpdateStatus(ctx context.Context, id int64, newStatus domain.BookingStatus) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
