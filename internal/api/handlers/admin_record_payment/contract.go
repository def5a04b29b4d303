package admin_record_payment

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type BookingsService interface {
	RecordManualPayment(ctx context.Context, id int64, method domain.PaymentMethod, amountCents int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
