package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type fakeBookingRepo struct {
	created []*domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	booking.ID = int64(len(f.created) + 1)
	f.created = append(f.created, booking)
	return booking, nil
}

type fakeScheduleRepo struct {
	cfg *domain.ShowingConfig
}

func (f *fakeScheduleRepo) GetShowingConfig(_ context.Context) (*domain.ShowingConfig, error) {
	if f.cfg != nil {
		return f.cfg, nil
	}
	return &domain.ShowingConfig{
		Key:                    domain.ShowingConfigKey,
		DefaultDurationMinutes: domain.DefaultShowingDurationMinutes,
		MaxSlotsPerWindow:      domain.DefaultMaxSlotsPerWindow,
	}, nil
}

type fakeCatalogRepo struct {
	items []domain.AddOn
}

func (f *fakeCatalogRepo) List(_ context.Context, _ bool) ([]domain.AddOn, error) {
	return f.items, nil
}

type fakeAvailability struct {
	eventErr   error
	showingErr error
}

func (f *fakeAvailability) EnsureEventAllowed(_ context.Context, _ string) error {
	return f.eventErr
}

func (f *fakeAvailability) EnsureShowingAllowed(_ context.Context, _ string, _ types.TimeString, _ *domain.ShowingConfig) error {
	return f.showingErr
}

type fakeTokenIssuer struct {
	issued int
}

func (f *fakeTokenIssuer) Issue(_ context.Context, booking *domain.Booking) (string, error) {
	f.issued++
	token := "issued-token"
	booking.ManagementToken = &token
	return token, nil
}

type fakeNotifier struct {
	events []notifications.Event
}

func (f *fakeNotifier) Dispatch(event notifications.Event, _ *domain.Booking) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countMetrics struct {
	created int
}

func (m *countMetrics) IncBookingCreated(string) { m.created++ }

type ucDeps struct {
	repo     *fakeBookingRepo
	avail    *fakeAvailability
	tokens   *fakeTokenIssuer
	notifier *fakeNotifier
	metrics  *countMetrics
	catalog  *fakeCatalogRepo
}

func newUseCase(t *testing.T, deps *ucDeps) *UseCase {
	t.Helper()
	cal, err := calendar.New("America/Chicago")
	require.NoError(t, err)

	engine := pricing.NewEngine(pricing.Rates{
		WeekdayHourlyRateCents:    12500,
		WeekendHourlyRateCents:    17500,
		ExtraSetupHourlyRateCents: 5000,
		DepositCents:              30000,
	})

	return NewUseCase(
		deps.repo,
		&fakeScheduleRepo{},
		deps.catalog,
		deps.avail,
		engine,
		deps.tokens,
		deps.notifier,
		fakeTxManager{},
		cal,
		ContractTerms{Version: "2026-01", Text: "Rental agreement terms."},
		nopLogger{},
		deps.metrics,
	)
}

func defaultDeps() *ucDeps {
	return &ucDeps{
		repo:     &fakeBookingRepo{},
		avail:    &fakeAvailability{},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
		catalog:  &fakeCatalogRepo{},
	}
}

// 2026-01-07 - среда, 2026-01-10 - суббота
const (
	wednesday = "2026-01-07"
	saturday  = "2026-01-10"
)

func eventRequest(date string, start, end types.TimeString) *Request {
	return &Request{
		BookingType:        domain.TypeEvent,
		EventDate:          date,
		StartTime:          start,
		EndTime:            end,
		CustomerName:       "Dana Whitfield",
		CustomerEmail:      "dana@example.com",
		ContractAccepted:   true,
		ContractSignerName: ptr.Ptr("Dana Whitfield"),
	}
}

func showingRequest(date string, at types.TimeString) *Request {
	return &Request{
		BookingType:     domain.TypeShowing,
		EventDate:       date,
		AppointmentTime: at,
		CustomerName:    "Avery Cole",
		CustomerEmail:   "avery@example.com",
	}
}

func TestExecute_EventHappyPath(t *testing.T) {
	deps := defaultDeps()
	deps.catalog.items = []domain.AddOn{
		{ID: 1, Name: "Projector", PriceCents: 7500, Active: true},
	}
	uc := newUseCase(t, deps)

	req := eventRequest(wednesday, "12:00", "18:00")
	req.ExtraSetupHours = 1
	req.AddOns = []pricing.AddOnSelection{{AddOnID: 1, Quantity: 2}}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.DayTypeWeekday, b.DayType)
	assert.Equal(t, 6, b.EventHours)
	assert.Equal(t, int64(75000), b.BaseAmountCents)
	assert.Equal(t, int64(5000), b.ExtraSetupCents)
	assert.Equal(t, int64(30000), b.DepositCents)
	// 75000 + 5000 + 30000 + 15000
	assert.Equal(t, int64(125000), b.TotalCents)

	// Снимок договора зафиксирован
	assert.True(t, b.ContractAccepted)
	require.NotNil(t, b.ContractVersion)
	assert.Equal(t, "2026-01", *b.ContractVersion)
	require.NotNil(t, b.ContractAcceptedAt)

	// Токен событиям при создании не выдаётся
	assert.Zero(t, deps.tokens.issued)
	assert.Equal(t, []notifications.Event{notifications.EventBookingCreated}, deps.notifier.events)
	assert.Equal(t, 1, deps.metrics.created)
}

func TestExecute_EventLocalTimes(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	resp, err := uc.Execute(context.Background(), eventRequest(wednesday, "12:00", "18:00"))
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, "2026-01-07 12:00", b.StartTime.In(loc).Format("2006-01-02 15:04"))
	assert.Equal(t, "2026-01-07 18:00", b.EndTime.In(loc).Format("2006-01-02 15:04"))
	assert.Equal(t, "2026-01-07 00:00", b.EventDate.In(loc).Format("2006-01-02 15:04"))
}

func TestExecute_EventBlockedDate(t *testing.T) {
	deps := defaultDeps()
	deps.avail.eventErr = availability.ErrDateBlocked
	uc := newUseCase(t, deps)

	_, err := uc.Execute(context.Background(), eventRequest(wednesday, "12:00", "18:00"))
	assert.ErrorIs(t, err, ErrDateBlocked)
	assert.Empty(t, deps.repo.created)
	assert.Empty(t, deps.notifier.events)
}

func TestExecute_EventDateTaken(t *testing.T) {
	deps := defaultDeps()
	deps.avail.eventErr = availability.ErrDateAlreadyBooked
	uc := newUseCase(t, deps)

	_, err := uc.Execute(context.Background(), eventRequest(wednesday, "12:00", "18:00"))
	assert.ErrorIs(t, err, ErrDateAlreadyBooked)
}

func TestExecute_WeekendMinimumDuration(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	// Суббота, 3 часа - меньше минимума
	_, err := uc.Execute(context.Background(), eventRequest(saturday, "12:00", "15:00"))
	assert.ErrorIs(t, err, ErrPricingRejected)

	// Ровно 4 часа проходят
	resp, err := uc.Execute(context.Background(), eventRequest(saturday, "12:00", "16:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.DayTypeWeekend, resp.Booking.DayType)
	assert.Equal(t, int64(17500), resp.Booking.HourlyRateCents)
}

func TestExecute_ContractRequired(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	req := eventRequest(wednesday, "12:00", "18:00")
	req.ContractAccepted = false

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrContractNotAccepted)
}

func TestExecute_ShowingHappyPath(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	resp, err := uc.Execute(context.Background(), showingRequest(wednesday, "15:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.TypeShowing, b.BookingType)
	assert.Equal(t, domain.StatusPending, b.Status)
	// Тур бесплатный
	assert.Zero(t, b.TotalCents)
	// Конец = начало + длительность из конфигурации
	assert.Equal(t, 30*time.Minute, b.EndTime.Sub(b.StartTime))

	// Токен выдан сразу
	assert.Equal(t, 1, deps.tokens.issued)
	assert.Equal(t, []notifications.Event{notifications.EventBookingCreated}, deps.notifier.events)
}

func TestExecute_ShowingOutsideWindow(t *testing.T) {
	deps := defaultDeps()
	deps.avail.showingErr = availability.ErrOutsideShowingWindow
	uc := newUseCase(t, deps)

	_, err := uc.Execute(context.Background(), showingRequest(wednesday, "17:45"))
	assert.ErrorIs(t, err, ErrOutsideShowingWindow)
}

func TestExecute_ShowingSlotTaken(t *testing.T) {
	deps := defaultDeps()
	deps.avail.showingErr = availability.ErrShowingSlotTaken
	uc := newUseCase(t, deps)

	_, err := uc.Execute(context.Background(), showingRequest(wednesday, "15:00"))
	assert.ErrorIs(t, err, ErrShowingSlotTaken)
}

func TestExecute_ValidationFailures(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	tests := []struct {
		name string
		req  *Request
	}{
		{"unknown type", &Request{BookingType: "banquet", EventDate: wednesday}},
		{"missing date", &Request{BookingType: domain.TypeEvent}},
		{"missing contact", func() *Request {
			r := eventRequest(wednesday, "12:00", "18:00")
			r.CustomerName = ""
			return r
		}()},
		{"bad email", func() *Request {
			r := eventRequest(wednesday, "12:00", "18:00")
			r.CustomerEmail = "not-an-email"
			return r
		}()},
		{"event without times", func() *Request {
			r := eventRequest(wednesday, "", "")
			return r
		}()},
		{"showing without time", showingRequest(wednesday, "")},
		{"bad calendar date", eventRequest("2026-02-30", "12:00", "18:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_EndBeforeStart(t *testing.T) {
	deps := defaultDeps()
	uc := newUseCase(t, deps)

	_, err := uc.Execute(context.Background(), eventRequest(wednesday, "18:00", "12:00"))
	assert.ErrorIs(t, err, ErrPricingRejected)
}
