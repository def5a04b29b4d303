package domain

// PriceBreakdown is the structured pricing result for an event booking.
// Invariant: TotalCents == BaseAmountCents + ExtraSetupCents + DepositCents
// + AddOnSubtotalCents(AddOns). A showing breakdown is all zeroes.
type PriceBreakdown struct {
	DayType         DayType
	HourlyRateCents int64
	EventHours      int
	ExtraSetupHours int
	BaseAmountCents int64
	ExtraSetupCents int64
	DepositCents    int64
	AddOns          []BookingAddOn
	TotalCents      int64
}

// AddOnTotalCents returns the add-on part of the total.
func (p *PriceBreakdown) AddOnTotalCents() int64 {
	return AddOnSubtotalCents(p.AddOns)
}

// SumsToTotal verifies the breakdown invariant.
func (p *PriceBreakdown) SumsToTotal() bool {
	return p.TotalCents == p.BaseAmountCents+p.ExtraSetupCents+p.DepositCents+p.AddOnTotalCents()
}
