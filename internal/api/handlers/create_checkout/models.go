package create_checkout

import (
	createCheckout "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_checkout"
)

// CreateCheckoutRequest HTTP request model
type CreateCheckoutRequest struct {
	BookingID int64  `json:"bookingId"`
	Purpose   string `json:"purpose"` // "full" | "balance"
}

// CreateCheckoutResponse HTTP response model
type CreateCheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
	AmountCents int64  `json:"amountCents"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCheckoutRequest) ToUseCaseRequest() *createCheckout.Request {
	return &createCheckout.Request{
		BookingID: r.BookingID,
		Purpose:   r.Purpose,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCheckout.Response) *CreateCheckoutResponse {
	return &CreateCheckoutResponse{
		SessionID:   resp.SessionID,
		CheckoutURL: resp.CheckoutURL,
		AmountCents: resp.AmountCents,
	}
}
