package admin_showing_config

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type ScheduleRepository interface {
	GetShowingConfig(ctx context.Context) (*domain.ShowingConfig, error)
	UpsertShowingConfig(ctx context.Context, cfg *domain.ShowingConfig) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
