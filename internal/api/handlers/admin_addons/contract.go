package admin_addons

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type CatalogRepository interface {
	Create(ctx context.Context, addOn *domain.AddOn) (*domain.AddOn, error)
	GetByID(ctx context.Context, id int64) (*domain.AddOn, error)
	List(ctx context.Context, onlyActive bool) ([]domain.AddOn, error)
	Update(ctx context.Context, addOn *domain.AddOn) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
