package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model. Времена приходят строками
// "HH:MM" в локальной таймзоне площадки.
type CreateBookingRequest struct {
	BookingType string `json:"bookingType"` // "event" | "showing"
	EventDate   string `json:"eventDate"`   // "2026-01-10"

	StartTime       string           `json:"startTime,omitempty"`
	EndTime         string           `json:"endTime,omitempty"`
	ExtraSetupHours float64          `json:"extraSetupHours,omitempty"`
	AddOns          []AddOnSelection `json:"addOns,omitempty"`

	AppointmentTime string `json:"appointmentTime,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	TableCount *int    `json:"tableCount,omitempty"`
	ChairCount *int    `json:"chairCount,omitempty"`
	SetupNotes *string `json:"setupNotes,omitempty"`

	ContractAccepted   bool    `json:"contractAccepted,omitempty"`
	ContractSignerName *string `json:"contractSignerName,omitempty"`
}

// AddOnSelection выбранная доп. позиция
type AddOnSelection struct {
	AddOnID  int64 `json:"addOnId"`
	Quantity int   `json:"quantity"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID int64 `json:"bookingId"`
	// ManagementToken отдаётся только здесь, в ответе создателю тура.
	// Для аренды токен приходит после подтверждения оплаты.
	ManagementToken *string               `json:"managementToken,omitempty"`
	Booking         *handlers.BookingView `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		BookingType:        domain.BookingType(r.BookingType),
		EventDate:          r.EventDate,
		ExtraSetupHours:    r.ExtraSetupHours,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
		Notes:              r.Notes,
		TableCount:         r.TableCount,
		ChairCount:         r.ChairCount,
		SetupNotes:         r.SetupNotes,
		ContractAccepted:   r.ContractAccepted,
		ContractSignerName: r.ContractSignerName,
	}

	var err error
	if r.StartTime != "" {
		if req.StartTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
	}
	if r.EndTime != "" {
		if req.EndTime, err = types.NewTimeStringFromString(r.EndTime); err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
	}
	if r.AppointmentTime != "" {
		if req.AppointmentTime, err = types.NewTimeStringFromString(r.AppointmentTime); err != nil {
			return nil, fmt.Errorf("appointmentTime: %w", err)
		}
	}

	for _, sel := range r.AddOns {
		req.AddOns = append(req.AddOns, pricing.AddOnSelection{
			AddOnID:  sel.AddOnID,
			Quantity: sel.Quantity,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, cal *calendar.Calendar) *CreateBookingResponse {
	out := &CreateBookingResponse{
		BookingID: resp.BookingID,
		Booking:   handlers.NewBookingView(resp.Booking, cal),
	}
	if resp.Booking.BookingType == domain.TypeShowing {
		out.ManagementToken = resp.Booking.ManagementToken
	}
	return out
}
