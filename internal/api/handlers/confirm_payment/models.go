package confirm_payment

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	confirmPayment "github.com/m04kA/SMC-VenueBookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// ConfirmPaymentResponse HTTP response model.
// ManagementToken выдаётся здесь: для аренды это первый момент, когда
// клиент получает ссылку самообслуживания.
type ConfirmPaymentResponse struct {
	Success         bool                  `json:"success"`
	ManagementToken *string               `json:"managementToken,omitempty"`
	Booking         *handlers.BookingView `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest() *confirmPayment.Request {
	return &confirmPayment.Request{SessionID: r.SessionID}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response, cal *calendar.Calendar) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Success:         resp.Success,
		ManagementToken: resp.Booking.ManagementToken,
		Booking:         handlers.NewBookingView(resp.Booking, cal),
	}
}
