package handlers

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingView сериализация бронирования, общая для публичных ручек.
// Токен управления в теле не отдаётся: клиент уже знает его из URL,
// а админские выборки не должны раскрывать чужие токены.
type BookingView struct {
	ID          int64  `json:"id"`
	BookingType string `json:"bookingType"`
	Status      string `json:"status"`

	EventDate string `json:"eventDate"` // "YYYY-MM-DD" в таймзоне площадки
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"

	DayType         string         `json:"dayType,omitempty"`
	HourlyRateCents int64          `json:"hourlyRateCents,omitempty"`
	EventHours      int            `json:"eventHours,omitempty"`
	ExtraSetupHours int            `json:"extraSetupHours,omitempty"`
	BaseAmountCents int64          `json:"baseAmountCents,omitempty"`
	ExtraSetupCents int64          `json:"extraSetupCents,omitempty"`
	DepositCents    int64          `json:"depositCents,omitempty"`
	TotalCents      int64          `json:"totalCents"`
	AddOns          []AddOnLineView `json:"addOns,omitempty"`

	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	AmountPaidCents int64   `json:"amountPaidCents"`
	PaidInFull      bool    `json:"paidInFull"`

	ContractAccepted   bool    `json:"contractAccepted"`
	ContractSignerName *string `json:"contractSignerName,omitempty"`
	ContractVersion    *string `json:"contractVersion,omitempty"`

	TableCount *int    `json:"tableCount,omitempty"`
	ChairCount *int    `json:"chairCount,omitempty"`
	SetupNotes *string `json:"setupNotes,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AddOnLineView строка доп. позиции бронирования
type AddOnLineView struct {
	AddOnID             int64  `json:"addOnId"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	PriceAtBookingCents int64  `json:"priceAtBookingCents"`
	SubtotalCents       int64  `json:"subtotalCents"`
}

// NewBookingView строит сериализацию бронирования в таймзоне площадки
func NewBookingView(b *domain.Booking, cal *calendar.Calendar) *BookingView {
	view := &BookingView{
		ID:          b.ID,
		BookingType: string(b.BookingType),
		Status:      string(b.Status),

		EventDate: cal.FormatDate(b.EventDate),
		StartTime: cal.FormatTime(b.StartTime),
		EndTime:   cal.FormatTime(b.EndTime),

		DayType:         string(b.DayType),
		HourlyRateCents: b.HourlyRateCents,
		EventHours:      b.EventHours,
		ExtraSetupHours: b.ExtraSetupHours,
		BaseAmountCents: b.BaseAmountCents,
		ExtraSetupCents: b.ExtraSetupCents,
		DepositCents:    b.DepositCents,
		TotalCents:      b.TotalCents,

		AmountPaidCents: b.AmountPaidCents,
		PaidInFull:      b.IsPaidInFull(),

		ContractAccepted:   b.ContractAccepted,
		ContractSignerName: b.ContractSignerName,
		ContractVersion:    b.ContractVersion,

		TableCount: b.TableCount,
		ChairCount: b.ChairCount,
		SetupNotes: b.SetupNotes,

		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,

		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}

	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		view.PaymentMethod = &method
	}

	if len(b.AddOns) > 0 {
		view.AddOns = make([]AddOnLineView, 0, len(b.AddOns))
		for i := range b.AddOns {
			line := b.AddOns[i]
			view.AddOns = append(view.AddOns, AddOnLineView{
				AddOnID:             line.AddOnID,
				Name:                line.Name,
				Quantity:            line.Quantity,
				PriceAtBookingCents: line.PriceAtBookingCents,
				SubtotalCents:       line.SubtotalCents(),
			})
		}
	}

	return view
}
