package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDateAlreadyBooked возвращается при нарушении уникального индекса
	// "одно блокирующее event-бронирование на день". Страховка на уровне
	// БД от гонки check-then-insert между конкурентными запросами.
	ErrDateAlreadyBooked = errors.New("booking.repository: date already has a blocking event booking")

	// ErrTokenNotFound возвращается, когда токен управления не найден
	ErrTokenNotFound = errors.New("booking.repository: management token not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
