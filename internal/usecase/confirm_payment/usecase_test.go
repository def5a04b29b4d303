package confirm_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/stripeclient"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	applied  []storage.PaymentUpdate
}

func newFakeRepo(bs ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bs {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ApplyPayment(_ context.Context, id int64, upd storage.PaymentUpdate) error {
	f.applied = append(f.applied, upd)
	b := f.bookings[id]
	b.Status = upd.Status
	b.PaymentMethod = &upd.PaymentMethod
	b.StripeCheckoutSessionID = &upd.StripeCheckoutSessionID
	b.StripePaymentStatus = &upd.StripePaymentStatus
	b.AmountPaidCents = upd.AmountPaidCents
	return nil
}

type fakeStripe struct {
	session *stripeclient.CheckoutSession
	err     error
}

func (f *fakeStripe) GetCheckoutSession(_ context.Context, _ string) (*stripeclient.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeTokenIssuer struct {
	issued int
}

func (f *fakeTokenIssuer) Issue(_ context.Context, booking *domain.Booking) (string, error) {
	if booking.ManagementToken != nil {
		return *booking.ManagementToken, nil
	}
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
	confirmed int
}

func (m *countMetrics) IncPaymentConfirmed() { m.confirmed++ }

func pendingEvent(id int64, totalCents int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingType:   domain.TypeEvent,
		Status:        domain.StatusPending,
		TotalCents:    totalCents,
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
	}
}

func paidSession(id string, bookingID string, amount int64, purpose string) *stripeclient.CheckoutSession {
	return &stripeclient.CheckoutSession{
		ID:               id,
		PaymentStatus:    domain.StripeStatusPaid,
		AmountTotalCents: amount,
		Metadata: map[string]string{
			stripeclient.MetadataBookingID: bookingID,
			stripeclient.MetadataPurpose:   purpose,
		},
	}
}

type deps struct {
	repo     *fakeBookingRepo
	stripe   *fakeStripe
	tokens   *fakeTokenIssuer
	notifier *fakeNotifier
	metrics  *countMetrics
}

func newUC(d *deps) *UseCase {
	return NewUseCase(d.repo, d.stripe, d.tokens, d.notifier, fakeTxManager{}, nopLogger{}, d.metrics)
}

func TestExecute_FullPaymentConfirms(t *testing.T) {
	d := &deps{
		repo:     newFakeRepo(pendingEvent(1, 110000)),
		stripe:   &fakeStripe{session: paidSession("cs_1", "1", 110000, domain.PaymentPurposeFull)},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
	}

	resp, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	b := resp.Booking
	assert.True(t, resp.Success)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, int64(110000), b.AmountPaidCents)
	assert.True(t, b.IsPaidInFull())
	require.NotNil(t, b.PaymentMethod)
	assert.Equal(t, domain.PaymentStripe, *b.PaymentMethod)

	assert.Equal(t, 1, d.tokens.issued)
	assert.Equal(t, 1, d.metrics.confirmed)
	// Квитанция + подтверждение первого перехода в CONFIRMED
	assert.Equal(t, []notifications.Event{
		notifications.EventPaymentReceived,
		notifications.EventBookingConfirmed,
	}, d.notifier.events)
}

// Повторная доставка той же сессии (редирект + вебхук) не меняет сумму
// и не шлёт вторых писем.
func TestExecute_DoubleFireIsIdempotent(t *testing.T) {
	d := &deps{
		repo:     newFakeRepo(pendingEvent(1, 110000)),
		stripe:   &fakeStripe{session: paidSession("cs_1", "1", 110000, domain.PaymentPurposeFull)},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
	}
	uc := newUC(d)

	first, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, first.Booking.AmountPaidCents, second.Booking.AmountPaidCents)
	assert.Equal(t, first.Booking.Status, second.Booking.Status)
	// ApplyPayment выполнился ровно один раз
	assert.Len(t, d.repo.applied, 1)
	// Второй вызов не добавил ни одного письма
	assert.Len(t, d.notifier.events, 2)
	assert.Equal(t, 1, d.metrics.confirmed)
}

func TestExecute_BalancePaymentAdds(t *testing.T) {
	booking := pendingEvent(1, 110000)
	booking.Status = domain.StatusConfirmed
	booking.AmountPaidCents = 30000
	deposit := "cs_deposit"
	paid := domain.StripeStatusPaid
	booking.StripeCheckoutSessionID = &deposit
	booking.StripePaymentStatus = &paid

	d := &deps{
		repo:     newFakeRepo(booking),
		stripe:   &fakeStripe{session: paidSession("cs_balance", "1", 80000, domain.PaymentPurposeBalance)},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
	}

	resp, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_balance"})
	require.NoError(t, err)

	assert.Equal(t, int64(110000), resp.Booking.AmountPaidCents)
	assert.True(t, resp.Booking.IsPaidInFull())
	// Уже подтверждённое бронирование получает только квитанцию,
	// без повторного письма-подтверждения
	assert.Equal(t, []notifications.Event{notifications.EventPaymentReceived}, d.notifier.events)
}

func TestExecute_UnpaidSessionRejected(t *testing.T) {
	session := paidSession("cs_1", "1", 110000, domain.PaymentPurposeFull)
	session.PaymentStatus = domain.StripeStatusUnpaid

	d := &deps{
		repo:     newFakeRepo(pendingEvent(1, 110000)),
		stripe:   &fakeStripe{session: session},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
	}

	_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
	assert.ErrorIs(t, err, ErrSessionNotPaid)
	// Бронирование не тронуто
	assert.Empty(t, d.repo.applied)
	assert.Equal(t, domain.StatusPending, d.repo.bookings[1].Status)
}

func TestExecute_StripeUnavailableIsRetryable(t *testing.T) {
	d := &deps{
		repo:     newFakeRepo(pendingEvent(1, 110000)),
		stripe:   &fakeStripe{err: stripeclient.ErrUnavailable},
		tokens:   &fakeTokenIssuer{},
		notifier: &fakeNotifier{},
		metrics:  &countMetrics{},
	}

	_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
	assert.ErrorIs(t, err, ErrPaymentProviderUnavailable)
	assert.Empty(t, d.repo.applied)
	assert.Empty(t, d.notifier.events)
}

func TestExecute_MetadataValidation(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"missing booking id", map[string]string{}},
		{"non-numeric booking id", map[string]string{stripeclient.MetadataBookingID: "abc"}},
		{"non-positive booking id", map[string]string{stripeclient.MetadataBookingID: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &stripeclient.CheckoutSession{
				ID:            "cs_1",
				PaymentStatus: domain.StripeStatusPaid,
				Metadata:      tt.metadata,
			}
			d := &deps{
				repo:     newFakeRepo(),
				stripe:   &fakeStripe{session: session},
				tokens:   &fakeTokenIssuer{},
				notifier: &fakeNotifier{},
				metrics:  &countMetrics{},
			}
			_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("unknown booking", func(t *testing.T) {
		d := &deps{
			repo:     newFakeRepo(),
			stripe:   &fakeStripe{session: paidSession("cs_1", "42", 100, domain.PaymentPurposeFull)},
			tokens:   &fakeTokenIssuer{},
			notifier: &fakeNotifier{},
			metrics:  &countMetrics{},
		}
		_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("showing booking", func(t *testing.T) {
		showing := &domain.Booking{ID: 2, BookingType: domain.TypeShowing, Status: domain.StatusPending}
		d := &deps{
			repo:     newFakeRepo(showing),
			stripe:   &fakeStripe{session: paidSession("cs_1", "2", 100, domain.PaymentPurposeFull)},
			tokens:   &fakeTokenIssuer{},
			notifier: &fakeNotifier{},
			metrics:  &countMetrics{},
		}
		_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrNotAnEvent)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		cancelled := pendingEvent(3, 110000)
		cancelled.Status = domain.StatusCancelled
		d := &deps{
			repo:     newFakeRepo(cancelled),
			stripe:   &fakeStripe{session: paidSession("cs_1", "3", 110000, domain.PaymentPurposeFull)},
			tokens:   &fakeTokenIssuer{},
			notifier: &fakeNotifier{},
			metrics:  &countMetrics{},
		}
		_, err := newUC(d).Execute(context.Background(), &Request{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("empty session id", func(t *testing.T) {
		d := &deps{
			repo:     newFakeRepo(),
			stripe:   &fakeStripe{},
			tokens:   &fakeTokenIssuer{},
			notifier: &fakeNotifier{},
			metrics:  &countMetrics{},
		}
		_, err := newUC(d).Execute(context.Background(), &Request{SessionID: ""})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
