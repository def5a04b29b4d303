package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректной строке даты
	ErrInvalidDate = errors.New("calendar: invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректной строке времени
	ErrInvalidTime = errors.New("calendar: invalid time, expected HH:MM")

	// ErrUnknownTimezone возвращается, если таймзона бизнеса не загружается
	ErrUnknownTimezone = errors.New("calendar: unknown business timezone")
)

// Calendar converts between wall-clock date/time strings and absolute
// instants in the single fixed business timezone. All "YYYY-MM-DD" and
// "HH:MM" input anywhere in the service is interpreted through it, never
// through the host timezone and never as UTC: parsing "YYYY-MM-DD" as UTC
// silently shifts the calendar day for any timezone west of UTC.
type Calendar struct {
	loc *time.Location
}

// New loads the business timezone (IANA name, e.g. "America/Chicago").
func New(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, timezone, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location returns the business timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// ParseDate validates a "YYYY-MM-DD" string and returns its components.
// Out-of-range months and days are rejected.
func (c *Calendar) ParseDate(s string) (year int, month time.Month, day int, err error) {
	t, perr := time.ParseInLocation(domain.DateFormat, s, c.loc)
	if perr != nil || t.Format(domain.DateFormat) != s {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// ParseTime validates an "HH:MM" string.
func (c *Calendar) ParseTime(s string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return ts, nil
}

// LocalDate returns the absolute instant of local midnight of the given
// calendar day in the business timezone.
func (c *Calendar) LocalDate(dateStr string) (time.Time, error) {
	year, month, day, err := c.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc), nil
}

// LocalDateTime returns the absolute instant of the given local date+time.
func (c *Calendar) LocalDateTime(dateStr string, timeStr types.TimeString) (time.Time, error) {
	year, month, day, err := c.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := timeStr.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, timeStr.String())
	}
	return time.Date(year, month, day, minutes/60, minutes%60, 0, 0, c.loc), nil
}

// Weekday returns the day of week of the local calendar date:
// 0 = Sunday ... 6 = Saturday, independent of the host timezone.
func (c *Calendar) Weekday(dateStr string) (time.Weekday, error) {
	midnight, err := c.LocalDate(dateStr)
	if err != nil {
		return 0, err
	}
	return midnight.In(c.loc).Weekday(), nil
}

// DayBoundaries returns the half-open interval [startOfDay, startOfNextDay)
// for range queries over the given local calendar day.
func (c *Calendar) DayBoundaries(dateStr string) (start, next time.Time, err error) {
	start, err = c.LocalDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// AddDate корректно обрабатывает переходы на летнее/зимнее время
	next = start.AddDate(0, 0, 1)
	return start, next, nil
}

// FormatDate renders an absolute instant as the local "YYYY-MM-DD" day.
func (c *Calendar) FormatDate(t time.Time) string {
	return t.In(c.loc).Format(domain.DateFormat)
}

// FormatTime renders an absolute instant as the local "HH:MM" time of day.
func (c *Calendar) FormatTime(t time.Time) string {
	return t.In(c.loc).Format(domain.TimeFormat)
}

// FormatForDisplay renders an absolute instant for customer-facing text,
// e.g. "Saturday, January 10, 2026 at 2:00 PM".
func (c *Calendar) FormatForDisplay(t time.Time) string {
	local := t.In(c.loc)
	return local.Format("Monday, January 2, 2006 at 3:04 PM")
}

// SameLocalDay reports whether two instants fall on the same local
// calendar day in the business timezone.
func (c *Calendar) SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// Today returns local midnight of now's calendar day.
func (c *Calendar) Today(now time.Time) time.Time {
	local := now.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}
