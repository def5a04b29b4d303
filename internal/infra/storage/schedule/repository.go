package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

const pqUniqueViolation = "23505"

// Repository репозиторий расписания: заблокированные даты, окна показов
// и singleton-конфигурация показов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// --- Заблокированные даты ---

// CreateBlockedDate блокирует календарный день для всех типов бронирований
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("blocked_date", "reason").
		Values(blocked.Date, blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDateAlreadyBlocked
		}
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time
	return blocked, nil
}

// IsDateBlocked проверяет, заблокирован ли календарный день
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"blocked_date": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// ListBlockedDates получает заблокированные даты начиная с указанной
func (r *Repository) ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"blocked_date": from}).
		OrderBy("blocked_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var blocked domain.BlockedDate
		var createdAt sql.NullTime
		if err := rows.Scan(&blocked.ID, &blocked.Date, &blocked.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		blocked.CreatedAt = createdAt.Time
		result = append(result, &blocked)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// DeleteBlockedDate снимает блокировку по ID
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}
	return nil
}

// --- Окна показов ---

var windowColumns = []string{"id", "day_of_week", "start_time", "end_time", "enabled", "created_at", "updated_at"}

// CreateWindow создает еженедельное окно показов
func (r *Repository) CreateWindow(ctx context.Context, window *domain.ShowingAvailability) (*domain.ShowingAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("showing_availability").
		Columns("day_of_week", "start_time", "end_time", "enabled").
		Values(window.DayOfWeek, window.StartTime, window.EndTime, window.Enabled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time
	return window, nil
}

// ListWindows получает все окна показов
func (r *Repository) ListWindows(ctx context.Context) ([]*domain.ShowingAvailability, error) {
	return r.listWindows(ctx, squirrel.And{})
}

// ListEnabledWindowsForDay получает включённые окна показов на день недели
// (0 = воскресенье ... 6 = суббота)
func (r *Repository) ListEnabledWindowsForDay(ctx context.Context, dayOfWeek int) ([]*domain.ShowingAvailability, error) {
	return r.listWindows(ctx, squirrel.And{
		squirrel.Eq{"day_of_week": dayOfWeek},
		squirrel.Eq{"enabled": true},
	})
}

func (r *Repository) listWindows(ctx context.Context, where squirrel.And) ([]*domain.ShowingAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(windowColumns...).
		From("showing_availability").
		OrderBy("day_of_week ASC, start_time ASC")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ShowingAvailability, 0)
	for rows.Next() {
		var window domain.ShowingAvailability
		var createdAt, updatedAt sql.NullTime
		err := rows.Scan(
			&window.ID,
			&window.DayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.Enabled,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listWindows - scan row: %v", ErrScanRow, err)
		}
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time
		result = append(result, &window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listWindows - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// UpdateWindow обновляет окно показов
func (r *Repository) UpdateWindow(ctx context.Context, window *domain.ShowingAvailability) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("showing_availability").
		Set("day_of_week", window.DayOfWeek).
		Set("start_time", window.StartTime).
		Set("end_time", window.EndTime).
		Set("enabled", window.Enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": window.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateWindow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateWindow - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateWindow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}
	return nil
}

// DeleteWindow удаляет окно показов
func (r *Repository) DeleteWindow(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("showing_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}
	return nil
}

// --- Конфигурация показов (singleton) ---

// GetShowingConfig получает конфигурацию показов.
// Если запись отсутствует, возвращает значения по умолчанию.
func (r *Repository) GetShowingConfig(ctx context.Context) (*domain.ShowingConfig, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("config_key", "default_duration_minutes", "max_slots_per_window", "updated_at").
		From("showing_config").
		Where(squirrel.Eq{"config_key": domain.ShowingConfigKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetShowingConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ShowingConfig
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.Key,
		&cfg.DefaultDurationMinutes,
		&cfg.MaxSlotsPerWindow,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return &domain.ShowingConfig{
			Key:                    domain.ShowingConfigKey,
			DefaultDurationMinutes: domain.DefaultShowingDurationMinutes,
			MaxSlotsPerWindow:      domain.DefaultMaxSlotsPerWindow,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShowingConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

// UpsertShowingConfig создает или обновляет singleton-конфигурацию показов
func (r *Repository) UpsertShowingConfig(ctx context.Context, cfg *domain.ShowingConfig) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("showing_config").
		Columns("config_key", "default_duration_minutes", "max_slots_per_window").
		Values(domain.ShowingConfigKey, cfg.DefaultDurationMinutes, cfg.MaxSlotsPerWindow).
		Suffix("ON CONFLICT (config_key) DO UPDATE SET default_duration_minutes = EXCLUDED.default_duration_minutes, max_slots_per_window = EXCLUDED.max_slots_per_window, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertShowingConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertShowingConfig - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}
