package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// DateStatus статус календарного дня для публичной проверки
type DateStatus string

const (
	StatusAvailable DateStatus = "available"
	StatusBooked    DateStatus = "booked"
	StatusBlocked   DateStatus = "blocked"
)

// Service решает, допустимо ли бронирование на дату/время. Порядок
// проверок фиксирован: блокировка дня, затем конфликт событий, затем
// окна показов. Вызов внутри сериализуемой транзакции делает пару
// проверка+вставка атомарной; страховкой от гонки остаётся частичный
// уникальный индекс по дню.
type Service struct {
	bookings BookingRepo
	schedule ScheduleRepo
	cal      *calendar.Calendar
	log      Logger
}

func New(bookings BookingRepo, schedule ScheduleRepo, cal *calendar.Calendar, log Logger) *Service {
	return &Service{bookings: bookings, schedule: schedule, cal: cal, log: log}
}

// CheckDate возвращает статус дня для публичного предпросмотра календаря
func (s *Service) CheckDate(ctx context.Context, dateStr string) (DateStatus, error) {
	dayStart, dayEnd, err := s.cal.DayBoundaries(dateStr)
	if err != nil {
		return "", err
	}

	blocked, err := s.schedule.IsDateBlocked(ctx, dayStart)
	if err != nil {
		return "", fmt.Errorf("%w: CheckDate - check blocked: %v", ErrInternal, err)
	}
	if blocked {
		return StatusBlocked, nil
	}

	dayBookings, err := s.bookings.GetByEventDate(ctx, dayStart, dayEnd)
	if err != nil {
		return "", fmt.Errorf("%w: CheckDate - fetch bookings: %v", ErrInternal, err)
	}
	for _, b := range dayBookings {
		if b.IsBlocking() {
			return StatusBooked, nil
		}
	}

	return StatusAvailable, nil
}

// EnsureEventAllowed проверяет, что день открыт и не занят другим
// событием. День занимает ровно одно событие в блокирующем статусе.
func (s *Service) EnsureEventAllowed(ctx context.Context, dateStr string) error {
	dayStart, dayEnd, err := s.cal.DayBoundaries(dateStr)
	if err != nil {
		return err
	}

	blocked, err := s.schedule.IsDateBlocked(ctx, dayStart)
	if err != nil {
		return fmt.Errorf("%w: EnsureEventAllowed - check blocked: %v", ErrInternal, err)
	}
	if blocked {
		return fmt.Errorf("%w: %s", ErrDateBlocked, dateStr)
	}

	dayBookings, err := s.bookings.GetByEventDate(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("%w: EnsureEventAllowed - fetch bookings: %v", ErrInternal, err)
	}
	for _, b := range dayBookings {
		if b.IsBlocking() {
			return fmt.Errorf("%w: %s", ErrDateAlreadyBooked, dateStr)
		}
	}

	return nil
}

// EnsureShowingAllowed проверяет время тура против окон показов и уже
// занятых слотов. Занятость дня событием туры не блокирует: площадку
// можно показывать и в день чужого мероприятия.
//
// Коллизия слотов считается по пересечению интервалов, а не только по
// совпадению времени начала, с лимитом maxSlotsPerWindow параллельных
// туров.
func (s *Service) EnsureShowingAllowed(ctx context.Context, dateStr string, start types.TimeString, cfg *domain.ShowingConfig) error {
	dayStart, dayEnd, err := s.cal.DayBoundaries(dateStr)
	if err != nil {
		return err
	}

	blocked, err := s.schedule.IsDateBlocked(ctx, dayStart)
	if err != nil {
		return fmt.Errorf("%w: EnsureShowingAllowed - check blocked: %v", ErrInternal, err)
	}
	if blocked {
		return fmt.Errorf("%w: %s", ErrDateBlocked, dateStr)
	}

	weekday, err := s.cal.Weekday(dateStr)
	if err != nil {
		return err
	}

	windows, err := s.schedule.ListEnabledWindowsForDay(ctx, int(weekday))
	if err != nil {
		return fmt.Errorf("%w: EnsureShowingAllowed - fetch windows: %v", ErrInternal, err)
	}

	// Тур должен целиком поместиться хотя бы в одно окно
	fits := false
	for _, w := range windows {
		if w.FitsAppointment(start, cfg.DefaultDurationMinutes) {
			fits = true
			break
		}
	}
	if !fits {
		return fmt.Errorf("%w: %s at %s", ErrOutsideShowingWindow, dateStr, start)
	}

	dayBookings, err := s.bookings.GetByEventDate(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("%w: EnsureShowingAllowed - fetch bookings: %v", ErrInternal, err)
	}

	overlapping, err := s.countOverlappingShowings(dayBookings, start, cfg.DefaultDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: EnsureShowingAllowed - count overlaps: %v", ErrInternal, err)
	}
	if overlapping >= cfg.MaxSlotsPerWindow {
		s.log.Warn("EnsureShowingAllowed: slot taken, %d/%d overlapping showings at %s %s",
			overlapping, cfg.MaxSlotsPerWindow, dateStr, start)
		return fmt.Errorf("%w: %s at %s", ErrShowingSlotTaken, dateStr, start)
	}

	return nil
}

// countOverlappingShowings считает неотменённые туры дня, пересекающиеся
// с интервалом [start, start+duration)
func (s *Service) countOverlappingShowings(dayBookings []*domain.Booking, start types.TimeString, durationMinutes int) (int, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	loc := s.cal.Location()
	count := 0
	for _, b := range dayBookings {
		if b.BookingType != domain.TypeShowing || b.IsCancelled() {
			continue
		}
		otherStart := b.StartTimeOfDay(loc)
		otherEnd := types.NewTimeString(b.EndTime.In(loc))

		// Строгие неравенства: встык - не пересечение
		if otherStart.IsBefore(end) && otherEnd.IsAfter(start) {
			count++
		}
	}
	return count, nil
}
