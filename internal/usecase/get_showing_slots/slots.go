package get_showing_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// generateSlotStarts генерирует времена начала слотов по всем включённым
// окнам с шагом duration. Слот входит в сетку, только если целиком
// помещается в окно. Пересекающиеся окна дают объединённую сетку без
// дублей, отсортированную по времени.
func generateSlotStarts(windows []*domain.ShowingAvailability, durationMinutes int) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]bool)

	for _, w := range windows {
		current := w.StartTime
		for current.IsBefore(w.EndTime) {
			end, err := current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
			if end.IsAfter(w.EndTime) {
				break
			}
			seen[current] = true

			current, err = current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
		}
	}

	starts := make([]types.TimeString, 0, len(seen))
	for s := range seen {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].IsBefore(starts[j])
	})
	return starts, nil
}

// calculateAvailableSpots вычисляет свободные места каждого слота,
// вычитая пересекающиеся неотменённые туры
func calculateAvailableSpots(
	starts []types.TimeString,
	cfg *domain.ShowingConfig,
	dayBookings []*domain.Booking,
	loc *time.Location,
) []Slot {
	result := make([]Slot, len(starts))

	for i, start := range starts {
		overlapping := countOverlappingShowings(start, cfg.DefaultDurationMinutes, dayBookings, loc)

		available := cfg.MaxSlotsPerWindow - overlapping
		if available < 0 {
			available = 0
		}

		result[i] = Slot{
			StartTime:       start,
			DurationMinutes: cfg.DefaultDurationMinutes,
			AvailableSpots:  available,
			TotalSpots:      cfg.MaxSlotsPerWindow,
		}
	}

	return result
}

// countOverlappingShowings считает неотменённые туры, пересекающиеся со
// слотом [start, start+duration). Строгие неравенства: слоты встык не
// пересекаются.
func countOverlappingShowings(
	start types.TimeString,
	durationMinutes int,
	dayBookings []*domain.Booking,
	loc *time.Location,
) int {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0
	for _, b := range dayBookings {
		if b.BookingType != domain.TypeShowing || b.IsCancelled() {
			continue
		}

		otherStart := b.StartTimeOfDay(loc)
		otherEnd := types.NewTimeString(b.EndTime.In(loc))

		if otherStart.IsBefore(end) && otherEnd.IsAfter(start) {
			count++
		}
	}
	return count
}
