package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BookingType discriminates the two kinds of reservations the venue accepts.
// The type is fixed at creation and never changes.
type BookingType string

const (
	// TypeEvent is a paid multi-hour venue rental with contract and deposit.
	TypeEvent BookingType = "event"
	// TypeShowing is a free fixed-duration tour appointment.
	TypeShowing BookingType = "showing"
)

// IsValid returns true for a known booking type.
func (t BookingType) IsValid() bool {
	return t == TypeEvent || t == TypeShowing
}

// BookingStatus represents the lifecycle status of a booking.
// Events and showings share the storage column but have distinct legal
// value sets, see StatusesForType and CanTransition.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentMethod is how an event booking was (or will be) paid.
type PaymentMethod string

const (
	PaymentStripe PaymentMethod = "stripe"
	PaymentCash   PaymentMethod = "cash"
	PaymentCheck  PaymentMethod = "check"
	PaymentComp   PaymentMethod = "comp"
	PaymentOther  PaymentMethod = "other"
)

// IsValid returns true for a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentStripe, PaymentCash, PaymentCheck, PaymentComp, PaymentOther:
		return true
	}
	return false
}

// DayType selects which hourly rate applies to an event date.
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// Booking represents a venue reservation: a paid event rental or a free
// showing appointment.
type Booking struct {
	ID          int64
	BookingType BookingType
	Status      BookingStatus

	// EventDate is local midnight of the booked calendar day in the
	// business timezone. StartTime/EndTime are absolute instants.
	EventDate time.Time
	StartTime time.Time
	EndTime   time.Time

	// Pricing snapshot, event only; all zero for showings.
	DayType         DayType
	HourlyRateCents int64
	EventHours      int
	ExtraSetupHours int
	BaseAmountCents int64
	ExtraSetupCents int64
	DepositCents    int64
	TotalCents      int64

	// Payment, event only.
	PaymentMethod           *PaymentMethod
	StripeCheckoutSessionID *string
	StripePaymentStatus     *string
	AmountPaidCents         int64

	// Contract audit snapshot, event only. Immutable once accepted.
	ContractAccepted   bool
	ContractAcceptedAt *time.Time
	ContractSignerName *string
	ContractVersion    *string
	ContractText       *string

	// Setup preferences, event only, optional.
	TableCount *int
	ChairCount *int
	SetupNotes *string

	// Contact.
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
	AdminNotes    *string

	// ManagementToken is the bearer capability granting self-service
	// access to this booking. Nil until issued.
	ManagementToken *string
	TokenExpiresAt  *time.Time

	AddOns []BookingAddOn

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking reached the terminal state.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsBlocking returns true if the booking occupies its calendar day for
// event-conflict purposes.
func (b *Booking) IsBlocking() bool {
	return b.BookingType == TypeEvent &&
		(b.Status == StatusPending || b.Status == StatusConfirmed)
}

// CanBeEdited returns true if contact/setup/add-on edits are still allowed.
func (b *Booking) CanBeEdited() bool {
	return b.Status != StatusCancelled
}

// IsPaidInFull returns true if the recorded payments cover the total.
// Always false for showings, which carry no payment.
func (b *Booking) IsPaidInFull() bool {
	return b.BookingType == TypeEvent && b.TotalCents > 0 && b.AmountPaidCents >= b.TotalCents
}

// RemainingBalanceCents returns how much is still owed on an event booking.
func (b *Booking) RemainingBalanceCents() int64 {
	remaining := b.TotalCents - b.AmountPaidCents
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartTimeOfDay returns the wall-clock start time in the given location.
func (b *Booking) StartTimeOfDay(loc *time.Location) types.TimeString {
	return types.NewTimeString(b.StartTime.In(loc))
}

// StatusesForType returns the legal status values for a booking type.
func StatusesForType(t BookingType) []BookingStatus {
	switch t {
	case TypeEvent:
		return []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled}
	case TypeShowing:
		return []BookingStatus{StatusPending, StatusCompleted, StatusCancelled}
	default:
		return nil
	}
}

// IsValidStatusForType reports whether status belongs to the type's value set.
func IsValidStatusForType(t BookingType, status BookingStatus) bool {
	for _, s := range StatusesForType(t) {
		if s == status {
			return true
		}
	}
	return false
}

// eventTransitions и showingTransitions - таблицы допустимых переходов
// статусов. CANCELLED терминален для обоих типов.
var eventTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {StatusConfirmed, StatusCancelled},
	// confirmed -> pending разрешён только как админский откат
	StatusConfirmed: {StatusCancelled, StatusPending},
	StatusCancelled: {},
}

var showingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {StatusCompleted, StatusCancelled},
	// completed -> cancelled - админская корректировка ошибочной отметки
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {},
}

// CanTransition reports whether a booking of type t may move from one
// status to another through the status-update path.
func CanTransition(t BookingType, from, to BookingStatus) bool {
	var table map[BookingStatus][]BookingStatus
	switch t {
	case TypeEvent:
		table = eventTransitions
	case TypeShowing:
		table = showingTransitions
	default:
		return false
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для админской выборки бронирований
type BookingsFilter struct {
	BookingType      *BookingType   // nil - оба типа
	Status           *BookingStatus // nil - любой статус
	StartDate        *time.Time     // начало периода по event_date (включительно)
	EndDate          *time.Time     // конец периода по event_date (не включительно)
	IncludeCancelled bool           // включать ли отменённые
}
