package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	storage "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
)

// ContractTerms действующая редакция договора аренды, фиксируемая на
// бронировании в момент акцепта
type ContractTerms struct {
	Version string
	Text    string
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	avail        AvailabilityService
	engine       PricingEngine
	tokens       TokenIssuer
	notifier     Notifier
	txManager    TransactionManager
	cal          *calendar.Calendar
	contract     ContractTerms
	timeProvider TimeProvider
	logger       Logger
	metrics      Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	avail AvailabilityService,
	engine PricingEngine,
	tokens TokenIssuer,
	notifier Notifier,
	txManager TransactionManager,
	cal *calendar.Calendar,
	contract ContractTerms,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		avail:        avail,
		engine:       engine,
		tokens:       tokens,
		notifier:     notifier,
		txManager:    txManager,
		cal:          cal,
		contract:     contract,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в сериализуемой транзакции;
// от гонки двух параллельных созданий дополнительно страхует частичный
// уникальный индекс "одно событие на день".
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: type=%s date=%s", req.BookingType, req.EventDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата обязана быть корректной локальной датой площадки
	eventDate, err := uc.cal.LocalDate(req.EventDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: bad date %q: %v", req.EventDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.buildBooking(txCtx, req, eventDate)
		if err != nil {
			return err
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, storage.ErrDateAlreadyBooked) {
				// Вторая заявка проиграла гонку за день
				uc.logger.Warn("CreateBooking: date %s lost to concurrent event", req.EventDate)
				return ErrDateAlreadyBooked
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Туры подтверждаются без оплаты: токен управления выдаётся сразу,
	// событиям - при подтверждении оплаты
	if result.BookingType == domain.TypeShowing {
		if _, err := uc.tokens.Issue(ctx, result); err != nil {
			// Бронирование уже создано, клиент получит ссылку позже
			uc.logger.Error("CreateBooking: failed to issue token for booking id=%d: %v", result.ID, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d type=%s", result.ID, result.BookingType)
	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(result.BookingType))
	}
	uc.notifier.Dispatch(notifications.EventBookingCreated, result)

	return &Response{BookingID: result.ID, Booking: result}, nil
}

// buildBooking выполняет проверки доступности и собирает доменную модель
// внутри транзакции
func (uc *UseCase) buildBooking(ctx context.Context, req *Request, eventDate time.Time) (*domain.Booking, error) {
	switch req.BookingType {
	case domain.TypeEvent:
		return uc.buildEvent(ctx, req, eventDate)
	case domain.TypeShowing:
		return uc.buildShowing(ctx, req, eventDate)
	default:
		return nil, fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}
}

func (uc *UseCase) buildEvent(ctx context.Context, req *Request, eventDate time.Time) (*domain.Booking, error) {
	if err := uc.avail.EnsureEventAllowed(ctx, req.EventDate); err != nil {
		return nil, uc.mapAvailabilityError(err, req.EventDate)
	}

	start, err := uc.cal.LocalDateTime(req.EventDate, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	end, err := uc.cal.LocalDateTime(req.EventDate, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	catalog, err := uc.catalogRepo.List(ctx, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load add-on catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load add-on catalog: %v", ErrInternal, err)
	}

	breakdown, err := uc.engine.Price(pricing.Request{
		BookingType:     domain.TypeEvent,
		Weekday:         eventDate.Weekday(),
		Start:           start,
		End:             end,
		ExtraSetupHours: req.ExtraSetupHours,
		AddOns:          req.AddOns,
		Catalog:         catalog,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrBreakdownMismatch) {
			// Баг движка, а не плохой ввод: об этом надо кричать
			uc.logger.Error("CreateBooking: INVARIANT VIOLATION, pricing breakdown mismatch: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: pricing rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingRejected, err)
	}

	now := uc.timeProvider.Now()
	signer := req.ContractSignerName

	return &domain.Booking{
		BookingType: domain.TypeEvent,
		Status:      domain.StatusPending,
		EventDate:   eventDate,
		StartTime:   start,
		EndTime:     end,

		DayType:         breakdown.DayType,
		HourlyRateCents: breakdown.HourlyRateCents,
		EventHours:      breakdown.EventHours,
		ExtraSetupHours: breakdown.ExtraSetupHours,
		BaseAmountCents: breakdown.BaseAmountCents,
		ExtraSetupCents: breakdown.ExtraSetupCents,
		DepositCents:    breakdown.DepositCents,
		TotalCents:      breakdown.TotalCents,
		AddOns:          breakdown.AddOns,

		ContractAccepted:   true,
		ContractAcceptedAt: &now,
		ContractSignerName: signer,
		ContractVersion:    &uc.contract.Version,
		ContractText:       &uc.contract.Text,

		TableCount: req.TableCount,
		ChairCount: req.ChairCount,
		SetupNotes: req.SetupNotes,

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}, nil
}

func (uc *UseCase) buildShowing(ctx context.Context, req *Request, eventDate time.Time) (*domain.Booking, error) {
	cfg, err := uc.scheduleRepo.GetShowingConfig(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load showing config: %v", err)
		return nil, fmt.Errorf("%w: failed to load showing config: %v", ErrInternal, err)
	}

	if err := uc.avail.EnsureShowingAllowed(ctx, req.EventDate, req.AppointmentTime, cfg); err != nil {
		return nil, uc.mapAvailabilityError(err, req.EventDate)
	}

	start, err := uc.cal.LocalDateTime(req.EventDate, req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &domain.Booking{
		BookingType: domain.TypeShowing,
		Status:      domain.StatusPending,
		EventDate:   eventDate,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(cfg.DefaultDurationMinutes) * time.Minute),

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,

		AddOns: []domain.BookingAddOn{},
	}, nil
}

// mapAvailabilityError транслирует ошибки резолвера доступности в
// sentinel-ошибки usecase с сохранением причины отказа
func (uc *UseCase) mapAvailabilityError(err error, dateStr string) error {
	switch {
	case errors.Is(err, availability.ErrDateBlocked):
		uc.logger.Warn("CreateBooking: date %s is blocked", dateStr)
		return ErrDateBlocked
	case errors.Is(err, availability.ErrDateAlreadyBooked):
		uc.logger.Warn("CreateBooking: date %s already booked", dateStr)
		return ErrDateAlreadyBooked
	case errors.Is(err, availability.ErrOutsideShowingWindow):
		uc.logger.Warn("CreateBooking: %v", err)
		return ErrOutsideShowingWindow
	case errors.Is(err, availability.ErrShowingSlotTaken):
		uc.logger.Warn("CreateBooking: %v", err)
		return ErrShowingSlotTaken
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrInvalidTime):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
