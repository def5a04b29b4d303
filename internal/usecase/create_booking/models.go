package create_booking

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// PricingRequest входные данные ценового движка
type PricingRequest = pricing.Request

// Request модель запроса на создание бронирования
type Request struct {
	BookingType domain.BookingType
	EventDate   string // локальная дата площадки, "YYYY-MM-DD"

	// Аренда (event)
	StartTime       types.TimeString
	EndTime         types.TimeString
	ExtraSetupHours float64
	AddOns          []pricing.AddOnSelection

	// Тур (showing)
	AppointmentTime types.TimeString

	// Контакт
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	// Настройки зала (event, опционально)
	TableCount *int
	ChairCount *int
	SetupNotes *string

	// Акцепт договора (event)
	ContractAccepted   bool
	ContractSignerName *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64
	Booking   *domain.Booking
}
