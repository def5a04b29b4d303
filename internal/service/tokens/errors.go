package tokens

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не соответствует ни одному бронированию
	ErrTokenNotFound = errors.New("tokens: management token not found")

	// ErrTokenExpired возвращается для известного, но просроченного токена
	ErrTokenExpired = errors.New("tokens: management token expired")
)
