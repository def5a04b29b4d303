package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrEndBeforeStart возвращается, когда время окончания не позже времени начала
	ErrEndBeforeStart = errors.New("pricing: end time must be after start time")

	// ErrWeekendMinDuration возвращается для weekend-аренды короче минимума
	ErrWeekendMinDuration = errors.New("pricing: weekend bookings must be at least 4 hours")

	// ErrInvalidBookingType возвращается при неизвестном типе бронирования
	ErrInvalidBookingType = errors.New("pricing: invalid booking type")

	// ErrBreakdownMismatch возвращается, если итог расчёта не сходится с
	// суммой составляющих. Указывает на баг движка, а не на плохой ввод.
	ErrBreakdownMismatch = errors.New("pricing: breakdown total does not match component sum")
)

// Rates тарифы площадки, все суммы в центах
type Rates struct {
	WeekdayHourlyRateCents    int64
	WeekendHourlyRateCents    int64
	ExtraSetupHourlyRateCents int64
	DepositCents              int64
}

// AddOnSelection запрошенная клиентом позиция каталога
type AddOnSelection struct {
	AddOnID  int64
	Quantity int
}

// Request входные данные расчёта цены
type Request struct {
	BookingType domain.BookingType
	Weekday     time.Weekday // локальный день недели даты мероприятия
	Start       time.Time
	End         time.Time
	// ExtraSetupHours принимается как float64: дробные и отрицательные
	// значения усекаются/обнуляются, а не отклоняются.
	ExtraSetupHours float64
	AddOns          []AddOnSelection
	// Catalog - активные позиции каталога; неизвестные и неактивные
	// AddOnID из запроса молча отбрасываются.
	Catalog []domain.AddOn
}

// Engine is the pure pricing function for bookings. The same request
// always yields the same breakdown; the engine holds no mutable state.
type Engine struct {
	rates Rates
}

// NewEngine создает движок с фиксированными тарифами
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Price computes the full price breakdown for a booking request.
//
// Event rules:
//   - weekend rate applies to Friday, Saturday and Sunday (a deliberate
//     3-day pricing window, not calendar weekend)
//   - eventHours is the whole-hour difference between end and start
//   - weekend rentals shorter than domain.MinEventWeekendHours are rejected
//   - the deposit is always added on top
//
// Showings are free: the breakdown is all zeroes.
func (e *Engine) Price(req Request) (*domain.PriceBreakdown, error) {
	switch req.BookingType {
	case domain.TypeShowing:
		return &domain.PriceBreakdown{AddOns: []domain.BookingAddOn{}}, nil
	case domain.TypeEvent:
		return e.priceEvent(req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookingType, req.BookingType)
	}
}

func (e *Engine) priceEvent(req Request) (*domain.PriceBreakdown, error) {
	if !req.End.After(req.Start) {
		return nil, ErrEndBeforeStart
	}

	eventHours := int(req.End.Sub(req.Start).Hours())

	dayType := domain.DayTypeWeekday
	hourlyRate := e.rates.WeekdayHourlyRateCents
	if domain.IsWeekendRate(req.Weekday) {
		dayType = domain.DayTypeWeekend
		hourlyRate = e.rates.WeekendHourlyRateCents

		if eventHours < domain.MinEventWeekendHours {
			return nil, fmt.Errorf("%w: requested %d hour(s)", ErrWeekendMinDuration, eventHours)
		}
	}

	extraSetupHours := clampSetupHours(req.ExtraSetupHours)

	breakdown := &domain.PriceBreakdown{
		DayType:         dayType,
		HourlyRateCents: hourlyRate,
		EventHours:      eventHours,
		ExtraSetupHours: extraSetupHours,
		BaseAmountCents: int64(eventHours) * hourlyRate,
		ExtraSetupCents: int64(extraSetupHours) * e.rates.ExtraSetupHourlyRateCents,
		DepositCents:    e.rates.DepositCents,
		AddOns:          ResolveAddOns(req.AddOns, req.Catalog),
	}
	breakdown.TotalCents = breakdown.BaseAmountCents +
		breakdown.ExtraSetupCents +
		breakdown.DepositCents +
		breakdown.AddOnTotalCents()

	// Самопроверка инварианта: расхождение здесь - баг движка,
	// и он должен упасть громко до какой-либо записи в БД
	if !breakdown.SumsToTotal() {
		return nil, fmt.Errorf("%w: total=%d", ErrBreakdownMismatch, breakdown.TotalCents)
	}

	return breakdown, nil
}

// clampSetupHours усекает дробную часть и обнуляет отрицательные значения
func clampSetupHours(hours float64) int {
	truncated := int(hours)
	if truncated < 0 {
		return 0
	}
	return truncated
}

// ResolveAddOns сопоставляет запрошенные позиции с каталогом и фиксирует
// цену на момент бронирования. Неизвестные, неактивные позиции и
// некорректные количества молча отбрасываются. Используется и при
// создании бронирования, и при замене позиций на существующем.
func ResolveAddOns(selections []AddOnSelection, catalog []domain.AddOn) []domain.BookingAddOn {
	byID := make(map[int64]domain.AddOn, len(catalog))
	for _, item := range catalog {
		if item.Active {
			byID[item.ID] = item
		}
	}

	lines := make([]domain.BookingAddOn, 0, len(selections))
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		item, ok := byID[sel.AddOnID]
		if !ok {
			continue
		}
		lines = append(lines, domain.BookingAddOn{
			AddOnID:             item.ID,
			Name:                item.Name,
			Quantity:            sel.Quantity,
			PriceAtBookingCents: item.PriceCents,
		})
	}
	return lines
}
