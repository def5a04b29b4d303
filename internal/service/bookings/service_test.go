package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	statuses []domain.BookingStatus
	details  []storage.DetailsUpdate
	addOns   [][]domain.BookingAddOn
	payments []int64
}

func newFakeRepo(bs ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bs {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statuses = append(f.statuses, status)
	f.bookings[id].Status = status
	return nil
}

func (f *fakeRepo) UpdateDetails(_ context.Context, id int64, upd storage.DetailsUpdate) error {
	f.details = append(f.details, upd)
	b := f.bookings[id]
	if upd.CustomerName != nil {
		b.CustomerName = *upd.CustomerName
	}
	if upd.TotalCents != nil {
		b.TotalCents = *upd.TotalCents
	}
	return nil
}

func (f *fakeRepo) ReplaceAddOns(_ context.Context, id int64, lines []domain.BookingAddOn) error {
	f.addOns = append(f.addOns, lines)
	f.bookings[id].AddOns = lines
	return nil
}

func (f *fakeRepo) RecordManualPayment(_ context.Context, id int64, method domain.PaymentMethod, amountCents int64) error {
	f.payments = append(f.payments, amountCents)
	b := f.bookings[id]
	b.PaymentMethod = &method
	b.AmountPaidCents += amountCents
	return nil
}

type fakeCatalog struct {
	items []domain.AddOn
}

func (f *fakeCatalog) List(_ context.Context, _ bool) ([]domain.AddOn, error) {
	return f.items, nil
}

type fakeResolver struct {
	booking *domain.Booking
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.booking
	return &copied, nil
}

type fakeNotifier struct {
	events []notifications.Event
}

func (f *fakeNotifier) Dispatch(event notifications.Event, _ *domain.Booking) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countMetrics struct {
	cancelled int
}

func (m *countMetrics) IncBookingCancelled(string) { m.cancelled++ }

func eventBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		BookingType:     domain.TypeEvent,
		Status:          status,
		CustomerName:    "Dana Whitfield",
		CustomerEmail:   "dana@example.com",
		BaseAmountCents: 75000,
		ExtraSetupCents: 5000,
		DepositCents:    30000,
		TotalCents:      110000,
	}
}

func showingBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingType:   domain.TypeShowing,
		Status:        status,
		CustomerName:  "Avery Cole",
		CustomerEmail: "avery@example.com",
	}
}

func newService(repo *fakeRepo, resolver *fakeResolver, notifier *fakeNotifier, catalog *fakeCatalog, m *countMetrics) *Service {
	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	return New(repo, catalog, resolver, notifier, fakeTxManager{}, nopLogger{}, m)
}

func TestUpdateStatus_EventConfirm(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusPending))
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, notifier, nil, &countMetrics{})

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, []notifications.Event{notifications.EventBookingConfirmed}, notifier.events)
}

func TestUpdateStatus_ConfirmIsIdempotent(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusConfirmed))
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, notifier, nil, &countMetrics{})

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	// Повторное подтверждение не шлёт второе письмо
	assert.Empty(t, notifier.events)
	assert.Empty(t, repo.statuses)
}

func TestUpdateStatus_AdminRevertConfirmedToPending(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusConfirmed))
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, notifier, nil, &countMetrics{})

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Empty(t, notifier.events)
}

func TestUpdateStatus_CancelSendsBothNotifications(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusConfirmed))
	notifier := &fakeNotifier{}
	metrics := &countMetrics{}
	svc := newService(repo, nil, notifier, nil, metrics)

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, []notifications.Event{notifications.EventBookingCancelled}, notifier.events)
	assert.Equal(t, 1, metrics.cancelled)
}

func TestUpdateStatus_RepeatCancelShortCircuits(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusCancelled))
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, notifier, nil, &countMetrics{})

	_, err := svc.UpdateStatus(context.Background(), 1, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	// Уведомление об отмене не дублируется
	assert.Empty(t, notifier.events)
	assert.Empty(t, repo.statuses)
}

func TestUpdateStatus_NoTransitionOutOfCancelled(t *testing.T) {
	repo := newFakeRepo(eventBooking(1, domain.StatusCancelled))
	svc := newService(repo, nil, &fakeNotifier{}, nil, &countMetrics{})

	_, err := svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ShowingValueSet(t *testing.T) {
	repo := newFakeRepo(showingBooking(2, domain.StatusPending))
	svc := newService(repo, nil, &fakeNotifier{}, nil, &countMetrics{})

	// confirmed не входит в множество статусов тура
	_, err := svc.UpdateStatus(context.Background(), 2, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := svc.UpdateStatus(context.Background(), 2, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	svc := newService(newFakeRepo(), nil, &fakeNotifier{}, nil, &countMetrics{})

	_, err := svc.UpdateStatus(context.Background(), 99, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateByToken_PatchAndNotify(t *testing.T) {
	booking := eventBooking(1, domain.StatusPending)
	repo := newFakeRepo(booking)
	notifier := &fakeNotifier{}
	resolver := &fakeResolver{booking: booking}
	svc := newService(repo, resolver, notifier, nil, &countMetrics{})

	updated, err := svc.UpdateByToken(context.Background(), "tok", UpdateParams{
		CustomerName: ptr.Ptr("Dana W."),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana W.", updated.CustomerName)
	assert.Equal(t, []notifications.Event{notifications.EventBookingUpdated}, notifier.events)
}

func TestUpdateByToken_ReplaceAddOnsRecomputesTotal(t *testing.T) {
	booking := eventBooking(1, domain.StatusConfirmed)
	repo := newFakeRepo(booking)
	notifier := &fakeNotifier{}
	resolver := &fakeResolver{booking: booking}
	catalog := &fakeCatalog{items: []domain.AddOn{
		{ID: 1, Name: "Projector", PriceCents: 7500, Active: true},
		{ID: 2, Name: "Stage lights", PriceCents: 12000, Active: true},
	}}
	svc := newService(repo, resolver, notifier, catalog, &countMetrics{})

	updated, err := svc.UpdateByToken(context.Background(), "tok", UpdateParams{
		AddOns:        []pricing.AddOnSelection{{AddOnID: 1, Quantity: 2}},
		ReplaceAddOns: true,
	})
	require.NoError(t, err)

	// 75000 + 5000 + 30000 + 2*7500
	assert.Equal(t, int64(125000), updated.TotalCents)
	require.Len(t, repo.addOns, 1)
	assert.Len(t, repo.addOns[0], 1)
	assert.Equal(t, int64(7500), repo.addOns[0][0].PriceAtBookingCents)
}

func TestUpdateByToken_RejectsCancelled(t *testing.T) {
	booking := eventBooking(1, domain.StatusCancelled)
	repo := newFakeRepo(booking)
	resolver := &fakeResolver{booking: booking}
	notifier := &fakeNotifier{}
	svc := newService(repo, resolver, notifier, nil, &countMetrics{})

	_, err := svc.UpdateByToken(context.Background(), "tok", UpdateParams{
		CustomerName: ptr.Ptr("Someone"),
	})
	assert.ErrorIs(t, err, ErrBookingCancelled)
	assert.Empty(t, notifier.events)
}

func TestUpdateByToken_EmptyPatchIsNoop(t *testing.T) {
	booking := eventBooking(1, domain.StatusPending)
	repo := newFakeRepo(booking)
	notifier := &fakeNotifier{}
	svc := newService(repo, &fakeResolver{booking: booking}, notifier, nil, &countMetrics{})

	_, err := svc.UpdateByToken(context.Background(), "tok", UpdateParams{})
	require.NoError(t, err)
	assert.Empty(t, repo.details)
	assert.Empty(t, notifier.events)
}

func TestCancelByToken(t *testing.T) {
	booking := showingBooking(3, domain.StatusPending)
	repo := newFakeRepo(booking)
	notifier := &fakeNotifier{}
	metrics := &countMetrics{}
	svc := newService(repo, &fakeResolver{booking: booking}, notifier, nil, metrics)

	updated, err := svc.CancelByToken(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, []notifications.Event{notifications.EventBookingCancelled}, notifier.events)
	assert.Equal(t, 1, metrics.cancelled)
}

func TestRecordManualPayment(t *testing.T) {
	booking := eventBooking(1, domain.StatusConfirmed)
	booking.AmountPaidCents = 30000
	repo := newFakeRepo(booking)
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, notifier, nil, &countMetrics{})

	updated, err := svc.RecordManualPayment(context.Background(), 1, domain.PaymentCheck, 80000)
	require.NoError(t, err)

	assert.Equal(t, int64(110000), updated.AmountPaidCents)
	assert.True(t, updated.IsPaidInFull())
	assert.Equal(t, []notifications.Event{notifications.EventPaymentReceived}, notifier.events)
}

func TestRecordManualPayment_Validation(t *testing.T) {
	repo := newFakeRepo(
		eventBooking(1, domain.StatusConfirmed),
		showingBooking(2, domain.StatusPending),
	)
	svc := newService(repo, nil, &fakeNotifier{}, nil, &countMetrics{})

	_, err := svc.RecordManualPayment(context.Background(), 1, "bitcoin", 100)
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = svc.RecordManualPayment(context.Background(), 1, domain.PaymentCash, 0)
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = svc.RecordManualPayment(context.Background(), 2, domain.PaymentCash, 100)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}
