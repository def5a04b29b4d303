package get_showing_slots

import (
	"context"

	getShowingSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_showing_slots"
)

type GetShowingSlotsUseCase interface {
	Execute(ctx context.Context, req *getShowingSlots.Request) (*getShowingSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
