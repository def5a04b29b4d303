package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/stripeclient"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

// UseCase use case подтверждения оплаты checkout-сессии.
// Редирект и вебхук Stripe могут доставить одну и ту же сессию дважды,
// поэтому протокол идемпотентен: повторный вызов с уже учтённой сессией
// возвращает текущее состояние без повторных списаний и писем.
type UseCase struct {
	bookingRepo BookingRepository
	stripe      StripeClient
	tokens      TokenIssuer
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
	metrics     Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stripe StripeClient,
	tokens TokenIssuer,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		stripe:      stripe,
		tokens:      tokens,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
		metrics:     metrics,
	}
}

// Execute выполняет протокол подтверждения оплаты.
// До записи в БД бронирование перечитывается под FOR UPDATE, так что
// проверка идемпотентности работает против персистентного состояния,
// а не закэшированного ранее значения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: session=%s", req.SessionID)

	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	// 1. Получаем сессию у Stripe; сбой провайдера - повторяемая ошибка,
	// бронирование не тронуто
	session, err := uc.stripe.GetCheckoutSession(ctx, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, stripeclient.ErrSessionNotFound):
			uc.logger.Warn("ConfirmPayment: session %s not found", req.SessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, stripeclient.ErrUnavailable):
			uc.logger.Error("ConfirmPayment: stripe unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentProviderUnavailable, err)
		default:
			uc.logger.Error("ConfirmPayment: failed to get session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 2. Неоплаченная сессия не мутирует бронирование
	if session.PaymentStatus != domain.StripeStatusPaid {
		uc.logger.Warn("ConfirmPayment: session %s status=%s, rejecting", session.ID, session.PaymentStatus)
		return nil, fmt.Errorf("%w: status %q", ErrSessionNotPaid, session.PaymentStatus)
	}

	// 3. ID бронирования из метаданных сессии
	bookingID, err := bookingIDFromMetadata(session)
	if err != nil {
		uc.logger.Warn("ConfirmPayment: session %s has no valid booking id: %v", session.ID, err)
		return nil, err
	}

	purpose := session.Metadata[stripeclient.MetadataPurpose]

	var (
		result       *domain.Booking
		alreadyPaid  bool
		wasConfirmed bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем под блокировкой: состояние могло измениться между
		// двумя конкурентными подтверждениями
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.BookingType != domain.TypeEvent {
			return ErrNotAnEvent
		}
		if booking.IsCancelled() {
			return fmt.Errorf("%w: booking %d", ErrBookingCancelled, booking.ID)
		}

		wasConfirmed = booking.Status == domain.StatusConfirmed

		// 4. Идемпотентность: эта сессия уже учтена - возвращаем состояние
		// как есть, без повторного инкремента и повторных писем
		if booking.StripeCheckoutSessionID != nil &&
			*booking.StripeCheckoutSessionID == session.ID &&
			booking.StripePaymentStatus != nil &&
			*booking.StripePaymentStatus == domain.StripeStatusPaid {
			uc.logger.Info("ConfirmPayment: session %s already applied to booking %d", session.ID, booking.ID)
			result = booking
			alreadyPaid = true
			return nil
		}

		// 5. Сумма к учёту: доплата остатка прибавляется, полная оплата
		// замещает представление о долге
		newPaid := session.AmountTotalCents
		if purpose == domain.PaymentPurposeBalance {
			newPaid = booking.AmountPaidCents + session.AmountTotalCents
		} else if session.AmountTotalCents != booking.TotalCents {
			// Сессия полной оплаты разошлась со снимком цены. Учитываем
			// фактически списанную сумму, но это баг ценового слоя
			uc.logger.Error("ConfirmPayment: INVARIANT VIOLATION, session %s amount=%d != booking %d total=%d",
				session.ID, session.AmountTotalCents, booking.ID, booking.TotalCents)
		}

		upd := storage.PaymentUpdate{
			Status:                  domain.StatusConfirmed,
			PaymentMethod:           domain.PaymentStripe,
			StripeCheckoutSessionID: session.ID,
			StripePaymentStatus:     session.PaymentStatus,
			AmountPaidCents:         newPaid,
		}
		if err := uc.bookingRepo.ApplyPayment(txCtx, booking.ID, upd); err != nil {
			return fmt.Errorf("%w: failed to apply payment: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.PaymentMethod = &upd.PaymentMethod
		booking.StripeCheckoutSessionID = &upd.StripeCheckoutSessionID
		booking.StripePaymentStatus = &upd.StripePaymentStatus
		booking.AmountPaidCents = newPaid

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Токен управления выдаётся при первом успешном платеже и никогда
	// не ротируется
	if _, err := uc.tokens.Issue(ctx, result); err != nil {
		uc.logger.Error("ConfirmPayment: failed to issue token for booking %d: %v", result.ID, err)
	}

	if alreadyPaid {
		return &Response{Success: true, Booking: result}, nil
	}

	uc.logger.Info("ConfirmPayment: booking %d confirmed, paid=%d/%d",
		result.ID, result.AmountPaidCents, result.TotalCents)
	if uc.metrics != nil {
		uc.metrics.IncPaymentConfirmed()
	}

	// 7. Квитанция уходит на каждое успешное списание; полное
	// подтверждение - только на первый переход в CONFIRMED
	uc.notifier.Dispatch(notifications.EventPaymentReceived, result)
	if !wasConfirmed {
		uc.notifier.Dispatch(notifications.EventBookingConfirmed, result)
	}

	return &Response{Success: true, Booking: result}, nil
}

// bookingIDFromMetadata извлекает ID бронирования из метаданных сессии
func bookingIDFromMetadata(session *stripeclient.CheckoutSession) (int64, error) {
	raw, ok := session.Metadata[stripeclient.MetadataBookingID]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: session metadata has no booking id", ErrInvalidInput)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad booking id %q in session metadata", ErrInvalidInput, raw)
	}
	return id, nil
}
