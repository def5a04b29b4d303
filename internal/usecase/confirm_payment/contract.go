package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/stripeclient"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

// BookingRepository интерфейс репозитория бронирований.
// GetByID внутри транзакции блокирует строку через FOR UPDATE, поэтому
// проверка идемпотентности видит актуальное персистентное состояние.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyPayment(ctx context.Context, id int64, upd storage.PaymentUpdate) error
}

// StripeClient интерфейс платёжного клиента
type StripeClient interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripeclient.CheckoutSession, error)
}

// TokenIssuer выдача токена управления
type TokenIssuer interface {
	Issue(ctx context.Context, booking *domain.Booking) (string, error)
}

// Notifier рассылка уведомлений об оплате и подтверждении
type Notifier interface {
	Dispatch(event notifications.Event, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики платёжных операций
type Metrics interface {
	IncPaymentConfirmed()
}
