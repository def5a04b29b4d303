package tokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

type fakeRepo struct {
	byToken map[string]*domain.Booking
	saved   map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byToken: make(map[string]*domain.Booking),
		saved:   make(map[int64]string),
	}
}

func (f *fakeRepo) GetByToken(_ context.Context, token string) (*domain.Booking, error) {
	b, ok := f.byToken[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return b, nil
}

func (f *fakeRepo) SetManagementToken(_ context.Context, id int64, token string) error {
	f.saved[id] = token
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestIssue_GeneratesAndPersists(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nopLogger{})

	booking := &domain.Booking{ID: 42}
	token, err := svc.Issue(context.Background(), booking)
	require.NoError(t, err)

	// 32 байта в hex
	assert.Len(t, token, 64)
	assert.Equal(t, token, repo.saved[42])
	require.NotNil(t, booking.ManagementToken)
	assert.Equal(t, token, *booking.ManagementToken)
}

func TestIssue_IdempotentForExistingToken(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nopLogger{})

	existing := "abc123"
	booking := &domain.Booking{ID: 7, ManagementToken: &existing}

	token, err := svc.Issue(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, existing, token)
	// В репозиторий не ходили
	assert.Empty(t, repo.saved)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nopLogger{})

	seen := make(map[string]bool)
	for i := int64(1); i <= 20; i++ {
		token, err := svc.Issue(context.Background(), &domain.Booking{ID: i})
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nopLogger{})

	booking := &domain.Booking{ID: 3}
	token, err := svc.Issue(context.Background(), booking)
	require.NoError(t, err)
	repo.byToken[token] = booking

	got, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestResolve_UnknownToken(t *testing.T) {
	svc := New(newFakeRepo(), nopLogger{})

	_, err := svc.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResolve_EmptyToken(t *testing.T) {
	svc := New(newFakeRepo(), nopLogger{})

	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResolve_ExpiredToken(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nopLogger{})

	past := time.Now().Add(-time.Hour)
	repo.byToken["expired"] = &domain.Booking{ID: 5, TokenExpiresAt: &past}

	_, err := svc.Resolve(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, errors.Is(err, ErrTokenNotFound))
}
