package availability

import "errors"

var (
	// ErrDateBlocked возвращается, когда день закрыт администратором
	ErrDateBlocked = errors.New("availability: date is blocked")

	// ErrDateAlreadyBooked возвращается, когда день занят другим событием
	ErrDateAlreadyBooked = errors.New("availability: date already has an event booking")

	// ErrOutsideShowingWindow возвращается, когда время тура не попадает
	// ни в одно включённое окно показов этого дня недели
	ErrOutsideShowingWindow = errors.New("availability: time is outside showing windows")

	// ErrShowingSlotTaken возвращается, когда слот тура уже занят
	ErrShowingSlotTaken = errors.New("availability: showing slot is already taken")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
