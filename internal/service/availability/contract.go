package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepo выборки бронирований для проверки конфликтов.
// Внутри транзакции строки блокируются через FOR UPDATE.
type BookingRepo interface {
	GetByEventDate(ctx context.Context, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
}

// ScheduleRepo заблокированные даты и окна показов
type ScheduleRepo interface {
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
	ListEnabledWindowsForDay(ctx context.Context, dayOfWeek int) ([]*domain.ShowingAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
