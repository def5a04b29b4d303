package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

// Service жизненный цикл бронирований после создания: самообслуживание
// по токену, админские переходы статусов и ручные оплаты.
type Service struct {
	repo     BookingRepo
	catalog  CatalogRepo
	tokens   TokenResolver
	notifier Notifier
	txm      TxManager
	log      Logger
	metrics  Metrics
}

func New(
	repo BookingRepo,
	catalog CatalogRepo,
	tokens TokenResolver,
	notifier Notifier,
	txm TxManager,
	log Logger,
	metrics Metrics,
) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		tokens:   tokens,
		notifier: notifier,
		txm:      txm,
		log:      log,
		metrics:  metrics,
	}
}

// GetByToken возвращает бронирование владельцу токена управления
func (s *Service) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return s.tokens.Resolve(ctx, token)
}

// GetByID возвращает бронирование для админской панели
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("GetByID - fetch booking %d: %w", id, err)
	}
	return booking, nil
}

// List возвращает бронирования по админскому фильтру
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result, err := s.repo.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("List - fetch bookings: %w", err)
	}
	return result, nil
}

// UpdateByToken частично редактирует контакты, настройки зала и доп.
// позиции бронирования. Замена позиций пересчитывает итоговую сумму по
// зафиксированным при создании тарифам. Отменённое бронирование
// редактировать нельзя.
func (s *Service) UpdateByToken(ctx context.Context, token string, params UpdateParams) (*domain.Booking, error) {
	booking, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeEdited() {
		return nil, fmt.Errorf("%w: booking %d", ErrBookingCancelled, booking.ID)
	}

	if params.IsEmpty() {
		return booking, nil
	}

	upd := storage.DetailsUpdate{
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		CustomerPhone: params.CustomerPhone,
		Notes:         params.Notes,
		TableCount:    params.TableCount,
		ChairCount:    params.ChairCount,
		SetupNotes:    params.SetupNotes,
	}

	var newLines []domain.BookingAddOn
	replaceAddOns := params.ReplaceAddOns && booking.BookingType == domain.TypeEvent
	if replaceAddOns {
		items, err := s.catalog.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("UpdateByToken - load add-on catalog: %w", err)
		}
		newLines = pricing.ResolveAddOns(params.AddOns, items)

		// Базовая часть цены не меняется, пересчитываем только позиции
		newTotal := booking.BaseAmountCents +
			booking.ExtraSetupCents +
			booking.DepositCents +
			domain.AddOnSubtotalCents(newLines)
		upd.TotalCents = &newTotal
	}

	err = s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateDetails(ctx, booking.ID, upd); err != nil {
			return fmt.Errorf("update details: %w", err)
		}
		if replaceAddOns {
			if err := s.repo.ReplaceAddOns(ctx, booking.ID, newLines); err != nil {
				return fmt.Errorf("replace add-ons: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateByToken - booking %d: %w", booking.ID, err)
	}

	updated, err := s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("UpdateByToken - reload booking %d: %w", booking.ID, err)
	}

	s.log.Info("UpdateByToken: booking=%d updated", updated.ID)
	s.notifier.Dispatch(notifications.EventBookingUpdated, updated)

	return updated, nil
}

// CancelByToken отменяет бронирование владельцем токена
func (s *Service) CancelByToken(ctx context.Context, token string) (*domain.Booking, error) {
	booking, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

// UpdateStatus выполняет админский переход статуса с проверкой по таблице
// переходов. Повторная отмена отвечает отдельной ошибкой, а не нарушением
// перехода.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidStatusForType(booking.BookingType, newStatus) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, newStatus, booking.BookingType)
	}

	if newStatus == domain.StatusCancelled {
		return s.cancel(ctx, booking)
	}

	if booking.Status == newStatus {
		return booking, nil
	}

	if !domain.CanTransition(booking.BookingType, booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s for %s",
			ErrInvalidTransition, booking.Status, newStatus, booking.BookingType)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, storage.ErrDateAlreadyBooked) {
			// Откат cancelled -> pending не проходит: день успело занять
			// другое событие
			return nil, ErrDateAlreadyBooked
		}
		return nil, fmt.Errorf("UpdateStatus - booking %d: %w", id, err)
	}

	wasConfirmed := booking.Status == domain.StatusConfirmed
	booking.Status = newStatus

	s.log.Info("UpdateStatus: booking=%d status=%s", id, newStatus)

	if booking.BookingType == domain.TypeEvent &&
		newStatus == domain.StatusConfirmed && !wasConfirmed {
		s.notifier.Dispatch(notifications.EventBookingConfirmed, booking)
	}

	return booking, nil
}

// RecordManualPayment записывает оплату, принятую вне Stripe
func (s *Service) RecordManualPayment(ctx context.Context, id int64, method domain.PaymentMethod, amountCents int64) (*domain.Booking, error) {
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidPayment, method)
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.BookingType != domain.TypeEvent {
		return nil, fmt.Errorf("%w: showings carry no payment", ErrInvalidPayment)
	}
	if booking.IsCancelled() {
		return nil, fmt.Errorf("%w: booking %d", ErrBookingCancelled, booking.ID)
	}

	if err := s.repo.RecordManualPayment(ctx, id, method, amountCents); err != nil {
		return nil, fmt.Errorf("RecordManualPayment - booking %d: %w", id, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("RecordManualPayment - reload booking %d: %w", id, err)
	}

	s.log.Info("RecordManualPayment: booking=%d method=%s amount=%d paid=%d",
		id, method, amountCents, updated.AmountPaidCents)
	s.notifier.Dispatch(notifications.EventPaymentReceived, updated)

	return updated, nil
}

// cancel переводит бронирование в терминальный статус и рассылает
// уведомления об отмене ровно один раз
func (s *Service) cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.IsCancelled() {
		return nil, fmt.Errorf("%w: booking %d", ErrAlreadyCancelled, booking.ID)
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel - booking %d: %w", booking.ID, err)
	}

	booking.Status = domain.StatusCancelled

	s.log.Info("cancel: booking=%d type=%s cancelled", booking.ID, booking.BookingType)
	if s.metrics != nil {
		s.metrics.IncBookingCancelled(string(booking.BookingType))
	}
	s.notifier.Dispatch(notifications.EventBookingCancelled, booking)

	return booking, nil
}
