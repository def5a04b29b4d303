package get_availability

import "github.com/m04kA/SMC-VenueBookingService/internal/service/availability"

// Request модель запроса статуса дня
type Request struct {
	Date string // "YYYY-MM-DD"
}

// Response модель ответа со статусом дня
type Response struct {
	Date   string
	Status availability.DateStatus
}
