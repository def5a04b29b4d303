package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

var addOnColumns = []string{"id", "name", "description", "price_cents", "active", "display_order", "created_at", "updated_at"}

// Repository репозиторий каталога доп. позиций
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает позицию каталога
func (r *Repository) Create(ctx context.Context, addOn *domain.AddOn) (*domain.AddOn, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("add_ons").
		Columns("name", "description", "price_cents", "active", "display_order").
		Values(addOn.Name, addOn.Description, addOn.PriceCents, addOn.Active, addOn.DisplayOrder).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&addOn.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	addOn.CreatedAt = createdAt.Time
	addOn.UpdatedAt = updatedAt.Time
	return addOn, nil
}

// GetByID получает позицию каталога по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AddOn, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(addOnColumns...).
		From("add_ons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	addOn, err := scanAddOn(row)
	if err == sql.ErrNoRows {
		return nil, ErrAddOnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan add-on: %v", ErrScanRow, err)
	}
	return addOn, nil
}

// List получает позиции каталога в порядке отображения.
// При onlyActive = true возвращает только активные позиции (публичный каталог).
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]domain.AddOn, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(addOnColumns...).
		From("add_ons").
		OrderBy("display_order ASC, id ASC")
	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AddOn, 0)
	for rows.Next() {
		addOn, err := scanAddOn(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, *addOn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Update обновляет позицию каталога.
// Снимок price_at_booking в существующих бронированиях не трогается.
func (r *Repository) Update(ctx context.Context, addOn *domain.AddOn) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("add_ons").
		Set("name", addOn.Name).
		Set("description", addOn.Description).
		Set("price_cents", addOn.PriceCents).
		Set("active", addOn.Active).
		Set("display_order", addOn.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": addOn.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAddOnNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAddOn(row rowScanner) (*domain.AddOn, error) {
	var addOn domain.AddOn
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&addOn.ID,
		&addOn.Name,
		&addOn.Description,
		&addOn.PriceCents,
		&addOn.Active,
		&addOn.DisplayOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	addOn.CreatedAt = createdAt.Time
	addOn.UpdatedAt = updatedAt.Time
	return &addOn, nil
}
