package create_checkout

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не существует
	ErrBookingNotFound = errors.New("create_checkout: booking not found")

	// ErrNotAnEvent возвращается для туров: они бесплатны
	ErrNotAnEvent = errors.New("create_checkout: booking is not an event")

	// ErrBookingCancelled возвращается для отменённого бронирования
	ErrBookingCancelled = errors.New("create_checkout: booking is cancelled")

	// ErrNothingToPay возвращается, когда остаток к оплате равен нулю
	ErrNothingToPay = errors.New("create_checkout: nothing left to pay")

	// ErrPaymentProviderUnavailable возвращается при недоступности Stripe
	ErrPaymentProviderUnavailable = errors.New("create_checkout: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_checkout: internal error")
)
