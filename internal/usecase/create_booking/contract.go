package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ScheduleRepository конфигурация показов
type ScheduleRepository interface {
	GetShowingConfig(ctx context.Context) (*domain.ShowingConfig, error)
}

// CatalogRepository каталог доп. позиций
type CatalogRepository interface {
	List(ctx context.Context, onlyActive bool) ([]domain.AddOn, error)
}

// AvailabilityService проверки допустимости даты/времени
type AvailabilityService interface {
	EnsureEventAllowed(ctx context.Context, dateStr string) error
	EnsureShowingAllowed(ctx context.Context, dateStr string, start types.TimeString, cfg *domain.ShowingConfig) error
}

// PricingEngine расчёт стоимости
type PricingEngine interface {
	Price(req PricingRequest) (*domain.PriceBreakdown, error)
}

// TokenIssuer выдача токена управления
type TokenIssuer interface {
	Issue(ctx context.Context, booking *domain.Booking) (string, error)
}

// Notifier рассылка уведомлений о созданном бронировании
type Notifier interface {
	Dispatch(event notifications.Event, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// Metrics счетчики бизнес-операций
type Metrics interface {
	IncBookingCreated(bookingType string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
