package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при пустом или некорректном ID сессии
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrSessionNotFound возвращается, когда checkout-сессия не существует
	ErrSessionNotFound = errors.New("confirm_payment: checkout session not found")

	// ErrSessionNotPaid возвращается, когда сессия ещё не оплачена
	ErrSessionNotPaid = errors.New("confirm_payment: session is not paid")

	// ErrBookingNotFound возвращается, когда бронирование из метаданных
	// сессии не существует
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrNotAnEvent возвращается для сессий, указывающих на тур:
	// туры бесплатны и не участвуют в платёжном протоколе
	ErrNotAnEvent = errors.New("confirm_payment: booking is not an event")

	// ErrBookingCancelled возвращается при оплате отменённого бронирования
	ErrBookingCancelled = errors.New("confirm_payment: booking is cancelled")

	// ErrPaymentProviderUnavailable возвращается при недоступности Stripe.
	// Бронирование не изменено, повтор запроса безопасен.
	ErrPaymentProviderUnavailable = errors.New("confirm_payment: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
