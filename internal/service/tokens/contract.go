package tokens

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingRepo доступ к бронированиям для выдачи и проверки токенов
type BookingRepo interface {
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	SetManagementToken(ctx context.Context, id int64, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
