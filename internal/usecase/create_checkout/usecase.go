package create_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/stripeclient"
)

// UseCase use case создания hosted checkout-сессии для оплаты аренды
type UseCase struct {
	bookingRepo BookingRepository
	stripe      StripeClient
	venueName   string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, stripe StripeClient, venueName string, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		stripe:      stripe,
		venueName:   venueName,
		logger:      logger,
	}
}

// Execute создает checkout-сессию. Сумма берётся из снимка цены на
// бронировании, а не из запроса: клиент не может заплатить "свою" цену.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckout: booking=%d purpose=%s", req.BookingID, req.Purpose)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.Purpose != domain.PaymentPurposeFull && req.Purpose != domain.PaymentPurposeBalance {
		return nil, fmt.Errorf("%w: purpose must be %q or %q",
			ErrInvalidInput, domain.PaymentPurposeFull, domain.PaymentPurposeBalance)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("CreateCheckout: booking %d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreateCheckout: failed to get booking %d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.BookingType != domain.TypeEvent {
		return nil, ErrNotAnEvent
	}
	if booking.IsCancelled() {
		return nil, fmt.Errorf("%w: booking %d", ErrBookingCancelled, booking.ID)
	}

	amount := booking.TotalCents
	description := fmt.Sprintf("%s event rental", uc.venueName)
	if req.Purpose == domain.PaymentPurposeBalance {
		amount = booking.RemainingBalanceCents()
		description = fmt.Sprintf("%s event rental, remaining balance", uc.venueName)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: booking %d", ErrNothingToPay, booking.ID)
	}

	session, err := uc.stripe.CreateCheckoutSession(ctx, stripeclient.CreateSessionParams{
		BookingID:     booking.ID,
		Purpose:       req.Purpose,
		AmountCents:   amount,
		Description:   description,
		CustomerEmail: booking.CustomerEmail,
	})
	if err != nil {
		if errors.Is(err, stripeclient.ErrUnavailable) {
			uc.logger.Error("CreateCheckout: stripe unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentProviderUnavailable, err)
		}
		uc.logger.Error("CreateCheckout: failed to create session for booking %d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateCheckout: session %s created for booking %d amount=%d", session.ID, booking.ID, amount)
	return &Response{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		AmountCents: amount,
	}, nil
}
