package bookings

import "github.com/m04kA/SMC-VenueBookingService/internal/pricing"

// UpdateParams частичное редактирование бронирования владельцем токена.
// nil-поля не трогаются; AddOns != nil означает полную замену позиций.
type UpdateParams struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Notes         *string
	TableCount    *int
	ChairCount    *int
	SetupNotes    *string
	AddOns        []pricing.AddOnSelection
	ReplaceAddOns bool
}

// IsEmpty сообщает, что патч не меняет ничего
func (p UpdateParams) IsEmpty() bool {
	return p.CustomerName == nil &&
		p.CustomerEmail == nil &&
		p.CustomerPhone == nil &&
		p.Notes == nil &&
		p.TableCount == nil &&
		p.ChairCount == nil &&
		p.SetupNotes == nil &&
		!p.ReplaceAddOns
}
