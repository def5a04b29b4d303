package bookings

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

// BookingRepo доступ к хранилищу бронирований
type BookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateDetails(ctx context.Context, id int64, upd storage.DetailsUpdate) error
	ReplaceAddOns(ctx context.Context, bookingID int64, lines []domain.BookingAddOn) error
	RecordManualPayment(ctx context.Context, id int64, method domain.PaymentMethod, amountCents int64) error
}

// CatalogRepo каталог доп. позиций для пересчёта при редактировании
type CatalogRepo interface {
	List(ctx context.Context, onlyActive bool) ([]domain.AddOn, error)
}

// TokenResolver находит бронирование по токену управления
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Booking, error)
}

// Notifier рассылает уведомления по доменным событиям
type Notifier interface {
	Dispatch(event notifications.Event, booking *domain.Booking)
}

// TxManager транзакционные границы для составных операций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики бизнес-операций
type Metrics interface {
	IncBookingCancelled(bookingType string)
}
