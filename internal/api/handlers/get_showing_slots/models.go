package get_showing_slots

import (
	getShowingSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_showing_slots"
)

// ShowingSlotsResponse HTTP response model
type ShowingSlotsResponse struct {
	Date  string        `json:"date"`
	Slots []ShowingSlot `json:"slots"`
}

// ShowingSlot слот показа с остатком мест
type ShowingSlot struct {
	StartTime       string `json:"startTime"` // "HH:MM"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getShowingSlots.Response) *ShowingSlotsResponse {
	out := &ShowingSlotsResponse{
		Date:  resp.Date,
		Slots: make([]ShowingSlot, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, ShowingSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}
	return out
}
