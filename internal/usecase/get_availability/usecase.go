package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
)

// UseCase use case публичной проверки статуса календарного дня
type UseCase struct {
	avail  AvailabilityService
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(avail AvailabilityService, logger Logger) *UseCase {
	return &UseCase{avail: avail, logger: logger}
}

// Execute возвращает статус дня: available, booked или blocked
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	status, err := uc.avail.CheckDate(ctx, req.Date)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidDate) {
			uc.logger.Warn("GetAvailability: bad date %q", req.Date)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailability: check failed for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{Date: req.Date, Status: status}, nil
}
