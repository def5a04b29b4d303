package stripeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки Stripe Checkout
type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Currency   string
}

// Client клиент Stripe Checkout Sessions
type Client struct {
	cfg Config
	log Logger
}

// NewClient создает клиент Stripe.
// Ключ API устанавливается глобально - так работает stripe-go.
func NewClient(cfg Config, log Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: stripe secret key is required", ErrInvalidRequest)
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	stripe.Key = cfg.SecretKey

	return &Client{cfg: cfg, log: log}, nil
}

// CreateCheckoutSession создает hosted checkout-сессию на указанную сумму.
// ID бронирования и назначение платежа кладутся в метаданные сессии -
// протокол подтверждения читает их обратно при редиректе/вебхуке.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(c.cfg.SuccessURL),
		CancelURL:     stripe.String(c.cfg.CancelURL),
		CustomerEmail: stripe.String(p.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.cfg.Currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
				},
			},
		},
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				MetadataBookingID: strconv.FormatInt(p.BookingID, 10),
				MetadataPurpose:   p.Purpose,
			},
			// Повтор запроса с тем же ключом не создаст вторую сессию
			IdempotencyKey: stripe.String(uuid.NewString()),
		},
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, c.wrapError("CreateCheckoutSession", err)
	}

	c.log.Info("CreateCheckoutSession: created session=%s for booking=%d amount=%d purpose=%s",
		sess.ID, p.BookingID, p.AmountCents, p.Purpose)

	return fromStripeSession(sess), nil
}

// GetCheckoutSession получает checkout-сессию по ID
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	}

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, c.wrapError("GetCheckoutSession", err)
	}

	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:               sess.ID,
		URL:              sess.URL,
		PaymentStatus:    string(sess.PaymentStatus),
		AmountTotalCents: sess.AmountTotal,
		Metadata:         sess.Metadata,
	}
}

// wrapError транслирует ошибки stripe-go в sentinel-ошибки клиента
func (c *Client) wrapError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing:
			return fmt.Errorf("%w: %s: %v", ErrSessionNotFound, op, err)
		case stripeErr.HTTPStatusCode >= http.StatusInternalServerError:
			c.log.Error("%s: stripe unavailable: %v", op, err)
			return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
		default:
			return fmt.Errorf("%w: %s: %v", ErrInvalidRequest, op, err)
		}
	}
	// Сетевые ошибки без структурированного ответа - считаем недоступностью
	c.log.Error("%s: stripe request failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
