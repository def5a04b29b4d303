package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BlockedDate is a single calendar day closed for all bookings.
type BlockedDate struct {
	ID        int64
	Date      time.Time // local midnight in the business timezone
	Reason    string
	CreatedAt time.Time
}

// ShowingAvailability is a recurring weekly window during which showing
// tours may be booked. Windows on the same day may overlap.
type ShowingAvailability struct {
	ID        int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether t falls inside the window: start <= t < end.
func (w *ShowingAvailability) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.StartTime) && t.IsBefore(w.EndTime)
}

// FitsAppointment reports whether an appointment starting at t with the
// given duration ends at or before the window end.
func (w *ShowingAvailability) FitsAppointment(t types.TimeString, durationMinutes int) bool {
	if !w.Contains(t) {
		return false
	}
	end, err := t.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(w.EndTime)
}

// ShowingConfigKey is the storage key of the singleton showing configuration.
const ShowingConfigKey = "default"

// ShowingConfig is the singleton configuration for showing appointments.
type ShowingConfig struct {
	Key                    string
	DefaultDurationMinutes int
	MaxSlotsPerWindow      int
	UpdatedAt              time.Time
}

// ShowingSlot is a bookable showing start time offered to the public.
type ShowingSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}
