package stripeclient

import "errors"

var (
	// ErrSessionNotFound возвращается, когда checkout-сессия не существует
	ErrSessionNotFound = errors.New("stripeclient: checkout session not found")

	// ErrUnavailable возвращается при недоступности Stripe API.
	// Вызывающая сторона может безопасно повторить операцию.
	ErrUnavailable = errors.New("stripeclient: stripe api unavailable")

	// ErrInvalidRequest возвращается при отклонённых Stripe параметрах запроса
	ErrInvalidRequest = errors.New("stripeclient: invalid request")
)
