package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не существует
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrBookingCancelled возвращается при попытке изменить отменённое бронирование
	ErrBookingCancelled = errors.New("bookings: booking is cancelled")

	// ErrAlreadyCancelled возвращается при повторной отмене.
	// Отличается от недопустимого перехода: клиенту отвечаем мягко.
	ErrAlreadyCancelled = errors.New("bookings: booking is already cancelled")

	// ErrInvalidTransition возвращается для запрещённого перехода статуса
	ErrInvalidTransition = errors.New("bookings: status transition is not allowed")

	// ErrInvalidStatus возвращается для статуса вне множества значений типа
	ErrInvalidStatus = errors.New("bookings: status is not valid for booking type")

	// ErrInvalidPayment возвращается для некорректной ручной оплаты
	ErrInvalidPayment = errors.New("bookings: invalid manual payment")

	// ErrDateAlreadyBooked возвращается, когда откат отмены упирается в
	// другое событие, успевшее занять этот день
	ErrDateAlreadyBooked = errors.New("bookings: date is already booked by another event")
)
