package domain

import "time"

// Default configuration values for showings
const (
	DefaultShowingDurationMinutes = 30
	DefaultMaxSlotsPerWindow      = 1
)

// Business validation constants
const (
	MinEventWeekendHours = 4 // weekend rentals must be at least this long

	MaxNotesLength      = 1000
	MaxSetupNotesLength = 1000
	MaxNameLength       = 200

	MinShowingDurationMinutes = 10
	MaxShowingDurationMinutes = 120
)

// Management token constants
const (
	// ManagementTokenBytes - количество случайных байт в токене (hex-кодируется в 64 символа)
	ManagementTokenBytes = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses - статусы, при которых event-бронирование занимает день.
// Используется при проверке конфликтов и в частичном уникальном индексе БД.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// weekendDays - дни, тарифицируемые по weekend-ставке.
// Для ценообразования "weekend" - это трёхдневное окно Пт-Сб-Вс,
// осознанная бизнес-политика, а не календарные выходные.
var weekendDays = map[time.Weekday]bool{
	time.Friday:   true,
	time.Saturday: true,
	time.Sunday:   true,
}

// IsWeekendRate reports whether the weekday is billed at the weekend rate.
func IsWeekendRate(d time.Weekday) bool {
	return weekendDays[d]
}

// Stripe payment statuses the confirmation protocol understands.
const (
	StripeStatusPaid   = "paid"
	StripeStatusUnpaid = "unpaid"
)

// Checkout session payment purposes carried in session metadata.
const (
	PaymentPurposeFull    = "full"
	PaymentPurposeBalance = "balance"
)
