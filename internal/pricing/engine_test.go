package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Тарифы из продакшн-конфигурации: $125/час будни, $175/час weekend,
// $50/час доп. подготовка, депозит $300.
var testRates = Rates{
	WeekdayHourlyRateCents:    12500,
	WeekendHourlyRateCents:    17500,
	ExtraSetupHourlyRateCents: 5000,
	DepositCents:              30000,
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.January, 7, hour, minute, 0, 0, time.UTC)
}

func TestPrice_WeekdayEvent(t *testing.T) {
	engine := NewEngine(testRates)

	// Среда 12:00-18:00 (6 часов) + 1 час подготовки, без доп. позиций
	breakdown, err := engine.Price(Request{
		BookingType:     domain.TypeEvent,
		Weekday:         time.Wednesday,
		Start:           at(12, 0),
		End:             at(18, 0),
		ExtraSetupHours: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DayTypeWeekday, breakdown.DayType)
	assert.Equal(t, int64(12500), breakdown.HourlyRateCents)
	assert.Equal(t, 6, breakdown.EventHours)
	assert.Equal(t, int64(75000), breakdown.BaseAmountCents)
	assert.Equal(t, int64(5000), breakdown.ExtraSetupCents)
	assert.Equal(t, int64(30000), breakdown.DepositCents)
	assert.Equal(t, int64(110000), breakdown.TotalCents)
	assert.True(t, breakdown.SumsToTotal())
}

func TestPrice_WeekendMinimumDuration(t *testing.T) {
	engine := NewEngine(testRates)

	// Суббота 14:00-17:00 (3 часа) - короче минимума
	_, err := engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Saturday,
		Start:       at(14, 0),
		End:         at(17, 0),
	})
	assert.ErrorIs(t, err, ErrWeekendMinDuration)

	// 3:59 усекается до 3 полных часов - тоже отказ
	_, err = engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Saturday,
		Start:       at(14, 0),
		End:         at(17, 59),
	})
	assert.ErrorIs(t, err, ErrWeekendMinDuration)

	// Ровно 4 часа проходит
	breakdown, err := engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Saturday,
		Start:       at(14, 0),
		End:         at(18, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, breakdown.EventHours)
	assert.Equal(t, domain.DayTypeWeekend, breakdown.DayType)
	assert.Equal(t, int64(17500), breakdown.HourlyRateCents)
}

// Weekend-ставка действует Пт-Сб-Вс, понедельник-четверг - будни.
func TestPrice_WeekendWindowIsThreeDays(t *testing.T) {
	engine := NewEngine(testRates)

	weekendDays := []time.Weekday{time.Friday, time.Saturday, time.Sunday}
	for _, day := range weekendDays {
		breakdown, err := engine.Price(Request{
			BookingType: domain.TypeEvent,
			Weekday:     day,
			Start:       at(12, 0),
			End:         at(18, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DayTypeWeekend, breakdown.DayType, "weekday %s", day)
	}

	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday} {
		breakdown, err := engine.Price(Request{
			BookingType: domain.TypeEvent,
			Weekday:     day,
			Start:       at(12, 0),
			End:         at(18, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DayTypeWeekday, breakdown.DayType, "weekday %s", day)
	}
}

func TestPrice_EndBeforeStart(t *testing.T) {
	engine := NewEngine(testRates)

	_, err := engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Wednesday,
		Start:       at(18, 0),
		End:         at(12, 0),
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Wednesday,
		Start:       at(12, 0),
		End:         at(12, 0),
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestPrice_SetupHoursClamped(t *testing.T) {
	engine := NewEngine(testRates)

	tests := []struct {
		name  string
		input float64
		want  int
	}{
		{name: "negative clamped to zero", input: -3, want: 0},
		{name: "fraction truncated", input: 2.9, want: 2},
		{name: "zero stays zero", input: 0, want: 0},
		{name: "whole hours kept", input: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := engine.Price(Request{
				BookingType:     domain.TypeEvent,
				Weekday:         time.Tuesday,
				Start:           at(10, 0),
				End:             at(14, 0),
				ExtraSetupHours: tt.input,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.ExtraSetupHours)
			assert.Equal(t, int64(tt.want)*testRates.ExtraSetupHourlyRateCents, breakdown.ExtraSetupCents)
		})
	}
}

func TestPrice_AddOns(t *testing.T) {
	engine := NewEngine(testRates)

	catalog := []domain.AddOn{
		{ID: 1, Name: "Projector", PriceCents: 7500, Active: true},
		{ID: 2, Name: "Sound system", PriceCents: 10000, Active: true},
		{ID: 3, Name: "Retired package", PriceCents: 99900, Active: false},
	}

	breakdown, err := engine.Price(Request{
		BookingType: domain.TypeEvent,
		Weekday:     time.Tuesday,
		Start:       at(10, 0),
		End:         at(14, 0),
		AddOns: []AddOnSelection{
			{AddOnID: 1, Quantity: 2},
			{AddOnID: 2, Quantity: 1},
			{AddOnID: 3, Quantity: 1},  // неактивная - отбрасывается
			{AddOnID: 99, Quantity: 1}, // неизвестная - отбрасывается
			{AddOnID: 2, Quantity: 0},  // нулевое количество - отбрасывается
		},
		Catalog: catalog,
	})
	require.NoError(t, err)

	require.Len(t, breakdown.AddOns, 2)
	assert.Equal(t, int64(25000), breakdown.AddOnTotalCents())

	// 4h * $125 + депозит $300 + доп. позиции $250
	assert.Equal(t, int64(50000+30000+25000), breakdown.TotalCents)
	assert.True(t, breakdown.SumsToTotal())

	// Цена зафиксирована на момент бронирования
	assert.Equal(t, int64(7500), breakdown.AddOns[0].PriceAtBookingCents)
	assert.Equal(t, 2, breakdown.AddOns[0].Quantity)
}

func TestPrice_ShowingIsFree(t *testing.T) {
	engine := NewEngine(testRates)

	breakdown, err := engine.Price(Request{
		BookingType: domain.TypeShowing,
		Weekday:     time.Saturday,
		Start:       at(15, 0),
		End:         at(15, 30),
	})
	require.NoError(t, err)

	assert.Zero(t, breakdown.TotalCents)
	assert.Zero(t, breakdown.BaseAmountCents)
	assert.Zero(t, breakdown.DepositCents)
	assert.Empty(t, breakdown.AddOns)
}

func TestPrice_InvalidType(t *testing.T) {
	engine := NewEngine(testRates)

	_, err := engine.Price(Request{BookingType: "banquet"})
	assert.ErrorIs(t, err, ErrInvalidBookingType)
}

// Расчёт детерминирован: одинаковый вход - одинаковый результат.
func TestPrice_Deterministic(t *testing.T) {
	engine := NewEngine(testRates)

	req := Request{
		BookingType:     domain.TypeEvent,
		Weekday:         time.Friday,
		Start:           at(12, 0),
		End:             at(18, 0),
		ExtraSetupHours: 1.5,
		AddOns:          []AddOnSelection{{AddOnID: 1, Quantity: 3}},
		Catalog:         []domain.AddOn{{ID: 1, Name: "Projector", PriceCents: 7500, Active: true}},
	}

	first, err := engine.Price(req)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := engine.Price(req)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
