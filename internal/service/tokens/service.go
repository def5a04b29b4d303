package tokens

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

// Service выдает и проверяет bearer-токены управления бронированием.
// Токен - секрет уровня пароля: сервис никогда не пишет его в логи.
type Service struct {
	repo BookingRepo
	log  Logger
}

func New(repo BookingRepo, log Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Issue выдает токен управления для бронирования.
// Операция идемпотентна: повторный вызов возвращает уже выданный токен,
// ротации нет - ссылки из старых писем продолжают работать.
func (s *Service) Issue(ctx context.Context, booking *domain.Booking) (string, error) {
	if booking.ManagementToken != nil && *booking.ManagementToken != "" {
		return *booking.ManagementToken, nil
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("Issue - generate token: %w", err)
	}

	if err := s.repo.SetManagementToken(ctx, booking.ID, token); err != nil {
		return "", fmt.Errorf("Issue - persist token for booking %d: %w", booking.ID, err)
	}

	booking.ManagementToken = &token
	booking.TokenExpiresAt = nil

	s.log.Info("Issue: management token issued for booking=%d", booking.ID)
	return token, nil
}

// Resolve находит бронирование по токену управления.
// Просроченный токен отличим от несуществующего: клиент для первого
// получает 410, для второго 404.
func (s *Service) Resolve(ctx context.Context, token string) (*domain.Booking, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	booking, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("Resolve - lookup booking: %w", err)
	}

	if booking.TokenExpiresAt != nil && booking.TokenExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: booking %d", ErrTokenExpired, booking.ID)
	}

	return booking, nil
}

func generateToken() (string, error) {
	buf := make([]byte, domain.ManagementTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
