package confirm_payment

import "github.com/m04kA/SMC-VenueBookingService/internal/domain"

// Request модель запроса подтверждения оплаты
type Request struct {
	SessionID string
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	Success bool
	Booking *domain.Booking
}
