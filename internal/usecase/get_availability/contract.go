package get_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
)

// AvailabilityService статус календарного дня
type AvailabilityService interface {
	CheckDate(ctx context.Context, dateStr string) (availability.DateStatus, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
