package cancel_managed_booking

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type BookingsService interface {
	CancelByToken(ctx context.Context, token string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
