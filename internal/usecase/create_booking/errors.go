package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateBlocked возвращается, когда день закрыт администратором
	ErrDateBlocked = errors.New("create_booking: date is blocked")

	// ErrDateAlreadyBooked возвращается, когда день занят другим событием
	ErrDateAlreadyBooked = errors.New("create_booking: date already has an event booking")

	// ErrOutsideShowingWindow возвращается, когда время тура не попадает в
	// окна показов или тур не помещается в окно целиком
	ErrOutsideShowingWindow = errors.New("create_booking: time is outside showing windows")

	// ErrShowingSlotTaken возвращается, когда слот тура уже занят
	ErrShowingSlotTaken = errors.New("create_booking: showing slot is already taken")

	// ErrPricingRejected возвращается при нарушении ценовых правил
	// (конец раньше начала, weekend-минимум)
	ErrPricingRejected = errors.New("create_booking: pricing validation failed")

	// ErrContractNotAccepted возвращается, когда аренда создаётся без
	// акцепта договора
	ErrContractNotAccepted = errors.New("create_booking: rental contract must be accepted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
