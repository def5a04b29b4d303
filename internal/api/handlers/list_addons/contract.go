package list_addons

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type CatalogRepository interface {
	List(ctx context.Context, onlyActive bool) ([]domain.AddOn, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
