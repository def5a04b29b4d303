package get_showing_slots

import "github.com/m04kA/SMC-VenueBookingService/pkg/types"

// Request модель запроса слотов показов
type Request struct {
	Date string // "YYYY-MM-DD"
}

// Response модель ответа со слотами показов на день
type Response struct {
	Date  string
	Slots []Slot
}

// Slot модель слота показа
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}
