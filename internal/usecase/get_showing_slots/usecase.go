package get_showing_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
)

// UseCase use case для получения свободных слотов показов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	cal          *calendar.Calendar
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	cal *calendar.Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		cal:          cal,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов показов.
// Слоты генерируются по включённым окнам дня недели с шагом
// defaultDurationMinutes, затем из них вычитаются уже занятые туры.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetShowingSlots: date=%s", req.Date)

	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dayStart, dayEnd, err := uc.cal.DayBoundaries(req.Date)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidDate) {
			uc.logger.Warn("GetShowingSlots: bad date %q", req.Date)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Прошедшие и заблокированные дни отдают пустой список, не ошибку
	if dayStart.Before(uc.cal.Today(uc.timeProvider.Now())) {
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, dayStart)
	if err != nil {
		uc.logger.Error("GetShowingSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	cfg, err := uc.scheduleRepo.GetShowingConfig(ctx)
	if err != nil {
		uc.logger.Error("GetShowingSlots: failed to load showing config: %v", err)
		return nil, fmt.Errorf("%w: failed to load showing config: %v", ErrInternal, err)
	}

	weekday, err := uc.cal.Weekday(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	windows, err := uc.scheduleRepo.ListEnabledWindowsForDay(ctx, int(weekday))
	if err != nil {
		uc.logger.Error("GetShowingSlots: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	dayBookings, err := uc.bookingRepo.GetByEventDate(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetShowingSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	starts, err := generateSlotStarts(windows, cfg.DefaultDurationMinutes)
	if err != nil {
		uc.logger.Error("GetShowingSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	slots := calculateAvailableSpots(starts, cfg, dayBookings, uc.cal.Location())

	uc.logger.Info("GetShowingSlots: generated %d slots for %s", len(slots), req.Date)
	return &Response{Date: req.Date, Slots: slots}, nil
}
