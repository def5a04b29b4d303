package get_availability

import (
	getAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"` // "available" | "booked" | "blocked"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:   resp.Date,
		Status: string(resp.Status),
	}
}
