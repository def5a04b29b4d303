package stripeclient

// Ключи метаданных checkout-сессии
const (
	MetadataBookingID = "bookingId"
	MetadataPurpose   = "purpose"
)

// CreateSessionParams параметры создания hosted checkout-сессии
type CreateSessionParams struct {
	BookingID     int64
	Purpose       string // domain.PaymentPurposeFull или PaymentPurposeBalance
	AmountCents   int64
	Description   string
	CustomerEmail string
}

// CheckoutSession проекция Stripe Checkout Session на нужные ядру поля
type CheckoutSession struct {
	ID               string
	URL              string
	PaymentStatus    string // "paid", "unpaid", "no_payment_required"
	AmountTotalCents int64
	Metadata         map[string]string
}
