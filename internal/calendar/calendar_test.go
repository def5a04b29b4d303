package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := New("America/Chicago")
	require.NoError(t, err)
	return cal
}

func TestNew_UnknownTimezone(t *testing.T) {
	_, err := New("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestParseDate(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-01-10"},
		{name: "leap day", input: "2024-02-29"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "day out of range", input: "2026-01-32", wantErr: true},
		{name: "non-leap feb 29", input: "2026-02-29", wantErr: true},
		{name: "wrong separator", input: "2026/01/10", wantErr: true},
		{name: "missing zero padding", input: "2026-1-9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := cal.ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	cal := newTestCalendar(t)

	_, err := cal.ParseTime("14:30")
	assert.NoError(t, err)

	for _, bad := range []string{"", "25:00", "14:60", "2:5", "14.30", "noon"} {
		_, err := cal.ParseTime(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", bad)
	}
}

// Local midnight must stay on the requested calendar day even though the
// business timezone is west of UTC. Naive UTC parsing would yield the
// previous local day.
func TestLocalDate_KeepsCalendarDay(t *testing.T) {
	cal := newTestCalendar(t)

	midnight, err := cal.LocalDate("2026-01-10")
	require.NoError(t, err)

	assert.Equal(t, "2026-01-10", cal.FormatDate(midnight))
	assert.Equal(t, 0, midnight.In(cal.Location()).Hour())

	// В UTC этот же момент - уже следующий час/день
	assert.Equal(t, "2026-01-10 06:00", midnight.UTC().Format("2006-01-02 15:04"))
}

func TestLocalDateTime(t *testing.T) {
	cal := newTestCalendar(t)

	ts, err := types.NewTimeStringFromString("14:00")
	require.NoError(t, err)

	instant, err := cal.LocalDateTime("2026-01-10", ts)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-10", cal.FormatDate(instant))
	assert.Equal(t, "14:00", cal.FormatTime(instant))
}

func TestWeekday(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		date string
		want time.Weekday
	}{
		{date: "2026-01-04", want: time.Sunday},
		{date: "2026-01-05", want: time.Monday},
		{date: "2026-01-08", want: time.Thursday},
		{date: "2026-01-09", want: time.Friday},
		{date: "2026-01-10", want: time.Saturday},
	}

	for _, tt := range tests {
		got, err := cal.Weekday(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s", tt.date)
	}
}

func TestDayBoundaries(t *testing.T) {
	cal := newTestCalendar(t)

	start, next, err := cal.DayBoundaries("2026-01-10")
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, next.Sub(start))
	assert.Equal(t, "2026-01-10", cal.FormatDate(start))
	assert.Equal(t, "2026-01-11", cal.FormatDate(next))
}

// Spring-forward day in the US is only 23 hours long; boundaries must
// still land on local midnights.
func TestDayBoundaries_DSTTransition(t *testing.T) {
	cal := newTestCalendar(t)

	start, next, err := cal.DayBoundaries("2026-03-08")
	require.NoError(t, err)

	assert.Equal(t, 23*time.Hour, next.Sub(start))
	assert.Equal(t, "2026-03-09", cal.FormatDate(next))
	assert.Equal(t, 0, next.In(cal.Location()).Hour())
}

func TestFormatForDisplay(t *testing.T) {
	cal := newTestCalendar(t)

	ts, err := types.NewTimeStringFromString("14:00")
	require.NoError(t, err)
	instant, err := cal.LocalDateTime("2026-01-10", ts)
	require.NoError(t, err)

	assert.Equal(t, "Saturday, January 10, 2026 at 2:00 PM", cal.FormatForDisplay(instant))
}

func TestSameLocalDay(t *testing.T) {
	cal := newTestCalendar(t)

	a, err := cal.LocalDate("2026-01-10")
	require.NoError(t, err)

	// 23:30 того же локального дня, выраженные в UTC следующего дня
	b := a.Add(23*time.Hour + 30*time.Minute)
	assert.Equal(t, "2026-01-11", b.UTC().Format("2006-01-02"))
	assert.True(t, cal.SameLocalDay(a, b))

	assert.False(t, cal.SameLocalDay(a, a.Add(25*time.Hour)))
}
