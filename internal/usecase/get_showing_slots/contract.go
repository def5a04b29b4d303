package get_showing_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepository выборка бронирований дня
type BookingRepository interface {
	GetByEventDate(ctx context.Context, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository окна показов, блокировки и конфигурация
type ScheduleRepository interface {
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
	ListEnabledWindowsForDay(ctx context.Context, dayOfWeek int) ([]*domain.ShowingAvailability, error)
	GetShowingConfig(ctx context.Context) (*domain.ShowingConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
