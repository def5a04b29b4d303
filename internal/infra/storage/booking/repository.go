package booking

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

// Код ошибки PostgreSQL при нарушении уникального ограничения
const pqUniqueViolation = "23505"

// Имя частичного уникального индекса "одно event-бронирование на день"
const oneEventPerDayIndex = "uniq_blocking_event_per_day"

var bookingColumns = []string{
	"id",
	"booking_type",
	"status",
	"event_date",
	"start_time",
	"end_time",
	"day_type",
	"hourly_rate_cents",
	"event_hours",
	"extra_setup_hours",
	"base_amount_cents",
	"extra_setup_cents",
	"deposit_cents",
	"total_cents",
	"payment_method",
	"stripe_checkout_session_id",
	"stripe_payment_status",
	"amount_paid_cents",
	"contract_accepted",
	"contract_accepted_at",
	"contract_signer_name",
	"contract_version",
	"contract_text",
	"table_count",
	"chair_count",
	"setup_notes",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"admin_notes",
	"management_token",
	"token_expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их доп. позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками доп. позиций.
// Если в контексте передана активная транзакция, использует её - при
// создании с проверкой доступности это обязательно, иначе проверка и
// вставка не атомарны.
//
// Нарушение уникального индекса "одно блокирующее event-бронирование на
// день" транслируется в ErrDateAlreadyBooked.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_type",
			"status",
			"event_date",
			"start_time",
			"end_time",
			"day_type",
			"hourly_rate_cents",
			"event_hours",
			"extra_setup_hours",
			"base_amount_cents",
			"extra_setup_cents",
			"deposit_cents",
			"total_cents",
			"payment_method",
			"amount_paid_cents",
			"contract_accepted",
			"contract_accepted_at",
			"contract_signer_name",
			"contract_version",
			"contract_text",
			"table_count",
			"chair_count",
			"setup_notes",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
			"admin_notes",
			"management_token",
			"token_expires_at",
		).
		Values(
			booking.BookingType,
			booking.Status,
			booking.EventDate,
			booking.StartTime,
			booking.EndTime,
			nullIfEmpty(string(booking.DayType)),
			booking.HourlyRateCents,
			booking.EventHours,
			booking.ExtraSetupHours,
			booking.BaseAmountCents,
			booking.ExtraSetupCents,
			booking.DepositCents,
			booking.TotalCents,
			paymentMethodValue(booking.PaymentMethod),
			booking.AmountPaidCents,
			booking.ContractAccepted,
			booking.ContractAcceptedAt,
			booking.ContractSignerName,
			booking.ContractVersion,
			booking.ContractText,
			booking.TableCount,
			booking.ChairCount,
			booking.SetupNotes,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
			booking.AdminNotes,
			booking.ManagementToken,
			booking.TokenExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isOneEventPerDayViolation(err) {
			return nil, ErrDateAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.AddOns) > 0 {
		if err := r.insertAddOns(ctx, executor, booking.ID, booking.AddOns); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с доп. позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, ErrBookingNotFound)
}

// GetByToken получает бронирование по токену управления
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"management_token": token}, ErrTokenNotFound)
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, notFound error) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	// Внутри транзакции блокируем строку: протокол подтверждения оплаты
	// должен проверять идемпотентность по зафиксированному состоянию
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadAddOns(ctx, executor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByEventDate получает все бронирования на локальный календарный день.
// Границы дня - полуинтервал [dayStart, dayEnd) по start_time.
// Внутри транзакции строки блокируются (FOR UPDATE) - используется
// usecase'ом создания для предотвращения гонки двойного бронирования.
func (r *Repository) GetByEventDate(ctx context.Context, dayStart, dayEnd time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(ctx, executor, rows)
}

// ListWithFilter получает бронирования с гибкой фильтрацией для админки
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.BookingType != nil {
		builder = builder.Where(squirrel.Eq{"booking_type": *filter.BookingType})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"event_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.Lt{"event_date": *filter.EndDate})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	builder = builder.OrderBy("event_date DESC, start_time DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(ctx, executor, rows)
}

// UpdateStatus обновляет статус бронирования.
// Допустимость перехода проверяет сервисный слой, не репозиторий.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isOneEventPerDayViolation(err) {
			// Откат cancelled -> pending на день, занятый другим событием
			return ErrDateAlreadyBooked
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// DetailsUpdate изменяемые клиентом поля бронирования
type DetailsUpdate struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Notes         *string
	TableCount    *int
	ChairCount    *int
	SetupNotes    *string
	AdminNotes    *string
	// TotalCents пересчитанный итог после замены доп. позиций
	TotalCents *int64
}

// UpdateDetails частично обновляет контактные данные и настройки зала.
// nil-поля не трогаются.
func (r *Repository) UpdateDetails(ctx context.Context, id int64, upd DetailsUpdate) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.CustomerName != nil {
		builder = builder.Set("customer_name", *upd.CustomerName)
	}
	if upd.CustomerEmail != nil {
		builder = builder.Set("customer_email", *upd.CustomerEmail)
	}
	if upd.CustomerPhone != nil {
		builder = builder.Set("customer_phone", *upd.CustomerPhone)
	}
	if upd.Notes != nil {
		builder = builder.Set("notes", *upd.Notes)
	}
	if upd.TableCount != nil {
		builder = builder.Set("table_count", *upd.TableCount)
	}
	if upd.ChairCount != nil {
		builder = builder.Set("chair_count", *upd.ChairCount)
	}
	if upd.SetupNotes != nil {
		builder = builder.Set("setup_notes", *upd.SetupNotes)
	}
	if upd.AdminNotes != nil {
		builder = builder.Set("admin_notes", *upd.AdminNotes)
	}
	if upd.TotalCents != nil {
		builder = builder.Set("total_cents", *upd.TotalCents)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateDetails")
}

// ReplaceAddOns полностью заменяет строки доп. позиций бронирования:
// delete-then-recreate, частичных патчей по строкам нет
func (r *Repository) ReplaceAddOns(ctx context.Context, bookingID int64, lines []domain.BookingAddOn) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_add_ons").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAddOns - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAddOns - execute delete: %v", ErrExecQuery, err)
	}

	if len(lines) == 0 {
		return nil
	}
	return r.insertAddOns(ctx, executor, bookingID, lines)
}

// PaymentUpdate результат протокола подтверждения оплаты
type PaymentUpdate struct {
	Status                  domain.BookingStatus
	PaymentMethod           domain.PaymentMethod
	StripeCheckoutSessionID string
	StripePaymentStatus     string
	AmountPaidCents         int64
}

// ApplyPayment атомарно записывает результат подтверждения оплаты
func (r *Repository) ApplyPayment(ctx context.Context, id int64, upd PaymentUpdate) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", upd.Status).
		Set("payment_method", string(upd.PaymentMethod)).
		Set("stripe_checkout_session_id", upd.StripeCheckoutSessionID).
		Set("stripe_payment_status", upd.StripePaymentStatus).
		Set("amount_paid_cents", upd.AmountPaidCents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApplyPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyPayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "ApplyPayment")
}

// RecordManualPayment записывает оплату, принятую вне Stripe (наличные,
// чек, comp), прибавляя сумму к уже оплаченной
func (r *Repository) RecordManualPayment(ctx context.Context, id int64, method domain.PaymentMethod, amountCents int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_method", string(method)).
		Set("amount_paid_cents", squirrel.Expr("amount_paid_cents + ?", amountCents)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordManualPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordManualPayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "RecordManualPayment")
}

// SetManagementToken сохраняет выданный токен управления и сбрасывает
// срок его действия
func (r *Repository) SetManagementToken(ctx context.Context, id int64, token string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("management_token", token).
		Set("token_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetManagementToken - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetManagementToken - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetManagementToken")
}

// Вспомогательные методы

func (r *Repository) insertAddOns(ctx context.Context, executor DBExecutor, bookingID int64, lines []domain.BookingAddOn) error {
	builder := psqlbuilder.Insert("booking_add_ons").
		Columns("booking_id", "add_on_id", "name", "quantity", "price_at_booking_cents")

	for _, line := range lines {
		builder = builder.Values(bookingID, line.AddOnID, line.Name, line.Quantity, line.PriceAtBookingCents)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertAddOns - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertAddOns - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) loadAddOns(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Select("add_on_id", "name", "quantity", "price_at_booking_cents").
		From("booking_add_ons").
		Where(squirrel.Eq{"booking_id": booking.ID}).
		OrderBy("add_on_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadAddOns - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAddOns - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.BookingAddOn, 0)
	for rows.Next() {
		var line domain.BookingAddOn
		if err := rows.Scan(&line.AddOnID, &line.Name, &line.Quantity, &line.PriceAtBookingCents); err != nil {
			return fmt.Errorf("%w: loadAddOns - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAddOns - rows error: %v", ErrScanRow, err)
	}

	booking.AddOns = lines
	return nil
}

func (r *Repository) scanBookings(ctx context.Context, executor DBExecutor, rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	for _, booking := range bookings {
		if err := r.loadAddOns(ctx, executor, booking); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		dayType       sql.NullString
		paymentMethod sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.BookingType,
		&booking.Status,
		&booking.EventDate,
		&booking.StartTime,
		&booking.EndTime,
		&dayType,
		&booking.HourlyRateCents,
		&booking.EventHours,
		&booking.ExtraSetupHours,
		&booking.BaseAmountCents,
		&booking.ExtraSetupCents,
		&booking.DepositCents,
		&booking.TotalCents,
		&paymentMethod,
		&booking.StripeCheckoutSessionID,
		&booking.StripePaymentStatus,
		&booking.AmountPaidCents,
		&booking.ContractAccepted,
		&booking.ContractAcceptedAt,
		&booking.ContractSignerName,
		&booking.ContractVersion,
		&booking.ContractText,
		&booking.TableCount,
		&booking.ChairCount,
		&booking.SetupNotes,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Notes,
		&booking.AdminNotes,
		&booking.ManagementToken,
		&booking.TokenExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dayType.Valid {
		booking.DayType = domain.DayType(dayType.String)
	}
	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		booking.PaymentMethod = &method
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func paymentMethodValue(m *domain.PaymentMethod) interface{} {
	if m == nil {
		return nil
	}
	return string(*m)
}

func isOneEventPerDayViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == oneEventPerDayIndex
	}
	return false
}
