package domain

import "time"

// AddOn is a catalog item that can be attached to an event booking.
// Deactivating an add-on hides it from new bookings but never changes
// the PriceAtBooking snapshots on existing ones.
type AddOn struct {
	ID           int64
	Name         string
	Description  *string
	PriceCents   int64
	Active       bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BookingAddOn is an add-on line frozen onto a booking. The price is
// snapshotted at booking time, independent of later catalog changes.
type BookingAddOn struct {
	AddOnID             int64
	Name                string
	Quantity            int
	PriceAtBookingCents int64
}

// SubtotalCents returns quantity * snapshotted price.
func (a *BookingAddOn) SubtotalCents() int64 {
	return int64(a.Quantity) * a.PriceAtBookingCents
}

// AddOnSubtotalCents sums the snapshot subtotals of all lines.
func AddOnSubtotalCents(lines []BookingAddOn) int64 {
	var total int64
	for i := range lines {
		total += lines[i].SubtotalCents()
	}
	return total
}
