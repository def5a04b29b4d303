package admin_showing_windows

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type ScheduleRepository interface {
	CreateWindow(ctx context.Context, window *domain.ShowingAvailability) (*domain.ShowingAvailability, error)
	ListWindows(ctx context.Context) ([]*domain.ShowingAvailability, error)
	UpdateWindow(ctx context.Context, window *domain.ShowingAvailability) error
	DeleteWindow(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
