package notifications

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/mailer"
)

// Sender отправляет одно письмо по шаблону
type Sender interface {
	Send(ctx context.Context, template mailer.Template, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики уведомлений
type Metrics interface {
	IncNotificationFailure(template string)
}
