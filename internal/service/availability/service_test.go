package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) GetByEventDate(_ context.Context, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeSchedule struct {
	blocked bool
	windows []*domain.ShowingAvailability
}

func (f *fakeSchedule) IsDateBlocked(_ context.Context, _ time.Time) (bool, error) {
	return f.blocked, nil
}

func (f *fakeSchedule) ListEnabledWindowsForDay(_ context.Context, _ int) ([]*domain.ShowingAvailability, error) {
	return f.windows, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New("America/Chicago")
	require.NoError(t, err)
	return cal
}

func showingAt(t *testing.T, cal *calendar.Calendar, dateStr, startStr string, minutes int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	start, err := cal.LocalDateTime(dateStr, types.TimeString(startStr))
	require.NoError(t, err)
	return &domain.Booking{
		BookingType: domain.TypeShowing,
		Status:      status,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
	}
}

func defaultConfig() *domain.ShowingConfig {
	return &domain.ShowingConfig{
		Key:                    domain.ShowingConfigKey,
		DefaultDurationMinutes: 30,
		MaxSlotsPerWindow:      1,
	}
}

// 2026-01-08 - четверг
const thursday = "2026-01-08"

func thursdayWindow() *domain.ShowingAvailability {
	return &domain.ShowingAvailability{
		ID:        1,
		DayOfWeek: 4,
		StartTime: "15:00",
		EndTime:   "18:00",
		Enabled:   true,
	}
}

func TestCheckDate(t *testing.T) {
	cal := mustCalendar(t)

	t.Run("blocked wins over booked", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				{BookingType: domain.TypeEvent, Status: domain.StatusConfirmed},
			}},
			&fakeSchedule{blocked: true},
			cal, nopLogger{},
		)
		status, err := svc.CheckDate(context.Background(), thursday)
		require.NoError(t, err)
		assert.Equal(t, StatusBlocked, status)
	})

	t.Run("booked by blocking event", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				{BookingType: domain.TypeEvent, Status: domain.StatusPending},
			}},
			&fakeSchedule{},
			cal, nopLogger{},
		)
		status, err := svc.CheckDate(context.Background(), thursday)
		require.NoError(t, err)
		assert.Equal(t, StatusBooked, status)
	})

	t.Run("cancelled event does not block", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				{BookingType: domain.TypeEvent, Status: domain.StatusCancelled},
			}},
			&fakeSchedule{},
			cal, nopLogger{},
		)
		status, err := svc.CheckDate(context.Background(), thursday)
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, status)
	})

	t.Run("showings do not mark day booked", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				showingAt(t, cal, thursday, "15:00", 30, domain.StatusPending),
			}},
			&fakeSchedule{},
			cal, nopLogger{},
		)
		status, err := svc.CheckDate(context.Background(), thursday)
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, status)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := New(&fakeBookings{}, &fakeSchedule{}, cal, nopLogger{})
		_, err := svc.CheckDate(context.Background(), "2026-13-40")
		assert.ErrorIs(t, err, calendar.ErrInvalidDate)
	})
}

func TestEnsureEventAllowed(t *testing.T) {
	cal := mustCalendar(t)

	t.Run("open day", func(t *testing.T) {
		svc := New(&fakeBookings{}, &fakeSchedule{}, cal, nopLogger{})
		assert.NoError(t, svc.EnsureEventAllowed(context.Background(), thursday))
	})

	t.Run("blocked day", func(t *testing.T) {
		svc := New(&fakeBookings{}, &fakeSchedule{blocked: true}, cal, nopLogger{})
		err := svc.EnsureEventAllowed(context.Background(), thursday)
		assert.ErrorIs(t, err, ErrDateBlocked)
	})

	t.Run("day taken by pending event", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				{BookingType: domain.TypeEvent, Status: domain.StatusPending},
			}},
			&fakeSchedule{},
			cal, nopLogger{},
		)
		err := svc.EnsureEventAllowed(context.Background(), thursday)
		assert.ErrorIs(t, err, ErrDateAlreadyBooked)
	})

	t.Run("cancelled event frees the day", func(t *testing.T) {
		svc := New(
			&fakeBookings{bookings: []*domain.Booking{
				{BookingType: domain.TypeEvent, Status: domain.StatusCancelled},
			}},
			&fakeSchedule{},
			cal, nopLogger{},
		)
		assert.NoError(t, svc.EnsureEventAllowed(context.Background(), thursday))
	})
}

func TestEnsureShowingAllowed_WindowFit(t *testing.T) {
	cal := mustCalendar(t)
	svc := New(&fakeBookings{}, &fakeSchedule{windows: []*domain.ShowingAvailability{thursdayWindow()}}, cal, nopLogger{})

	// Конец 18:15 выходит за конец окна 18:00
	err := svc.EnsureShowingAllowed(context.Background(), thursday, "17:45", defaultConfig())
	assert.ErrorIs(t, err, ErrOutsideShowingWindow)

	// 17:00 + 30 минут помещается целиком
	err = svc.EnsureShowingAllowed(context.Background(), thursday, "17:00", defaultConfig())
	assert.NoError(t, err)

	// Последний допустимый старт: конец ровно в 18:00
	err = svc.EnsureShowingAllowed(context.Background(), thursday, "17:30", defaultConfig())
	assert.NoError(t, err)

	// До начала окна
	err = svc.EnsureShowingAllowed(context.Background(), thursday, "14:30", defaultConfig())
	assert.ErrorIs(t, err, ErrOutsideShowingWindow)
}

func TestEnsureShowingAllowed_NoWindows(t *testing.T) {
	cal := mustCalendar(t)
	svc := New(&fakeBookings{}, &fakeSchedule{}, cal, nopLogger{})

	err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:00", defaultConfig())
	assert.ErrorIs(t, err, ErrOutsideShowingWindow)
}

func TestEnsureShowingAllowed_Collisions(t *testing.T) {
	cal := mustCalendar(t)
	schedule := &fakeSchedule{windows: []*domain.ShowingAvailability{thursdayWindow()}}

	t.Run("exact duplicate start", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			showingAt(t, cal, thursday, "15:00", 30, domain.StatusPending),
		}}, schedule, cal, nopLogger{})

		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:00", defaultConfig())
		assert.ErrorIs(t, err, ErrShowingSlotTaken)
	})

	t.Run("partial overlap also rejected", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			showingAt(t, cal, thursday, "15:00", 30, domain.StatusPending),
		}}, schedule, cal, nopLogger{})

		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:15", defaultConfig())
		assert.ErrorIs(t, err, ErrShowingSlotTaken)
	})

	t.Run("back to back is not overlap", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			showingAt(t, cal, thursday, "15:00", 30, domain.StatusPending),
		}}, schedule, cal, nopLogger{})

		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:30", defaultConfig())
		assert.NoError(t, err)
	})

	t.Run("cancelled showing frees the slot", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			showingAt(t, cal, thursday, "15:00", 30, domain.StatusCancelled),
		}}, schedule, cal, nopLogger{})

		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:00", defaultConfig())
		assert.NoError(t, err)
	})

	t.Run("higher slot cap admits parallel tour", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			showingAt(t, cal, thursday, "15:00", 30, domain.StatusPending),
		}}, schedule, cal, nopLogger{})

		cfg := defaultConfig()
		cfg.MaxSlotsPerWindow = 2
		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:00", cfg)
		assert.NoError(t, err)
	})

	t.Run("event on the day does not block tours", func(t *testing.T) {
		svc := New(&fakeBookings{bookings: []*domain.Booking{
			{BookingType: domain.TypeEvent, Status: domain.StatusConfirmed},
		}}, schedule, cal, nopLogger{})

		err := svc.EnsureShowingAllowed(context.Background(), thursday, "15:00", defaultConfig())
		assert.NoError(t, err)
	})
}
