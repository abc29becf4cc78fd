package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/pkg/dbmetrics"
	"github.com/looklab/LookLab-BookingService/pkg/psqlbuilder"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// uniqueViolationCode - SQLSTATE 23505
const uniqueViolationCode = "23505"

var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"service_name",
	"booking_date",
	"time_label",
	"status",
	"total_amount",
	"advance_amount",
	"balance_amount",
	"advance_order_id",
	"advance_payment_id",
	"balance_order_id",
	"balance_payment_id",
	"notes",
	"style_ref",
	"cancellation_reason",
	"cancelled_at",
	"service_done_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - это обязательный
// режим для confirm-advance: проверка ёмкости слота и вставка строки должны быть
// одной атомарной операцией.
//
// Нарушение уникальности advance_order_id транслируется в ErrDuplicateOrder:
// так схлопываются конкурентные повторные доставки одного webhook.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"service_name",
			"booking_date",
			"time_label",
			"status",
			"total_amount",
			"advance_amount",
			"balance_amount",
			"advance_order_id",
			"advance_payment_id",
			"notes",
			"style_ref",
		).
		Values(
			b.UserID,
			b.ServiceID,
			b.ServiceName,
			b.BookingDate,
			b.TimeLabel,
			b.Status,
			b.TotalAmount,
			b.AdvanceAmount,
			b.BalanceAmount,
			b.AdvanceOrderID,
			b.AdvancePaymentID,
			b.Notes,
			b.StyleRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateOrder
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByAdvanceOrderID получает бронирование по идентификатору авансового заказа.
// Основа идемпотентности confirm-advance: повторная доставка webhook находит
// существующую строку и возвращает её без изменений.
func (r *Repository) GetByAdvanceOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"advance_order_id": orderID}, "GetByAdvanceOrderID")
}

// GetByBalanceOrderID получает бронирование по идентификатору балансового заказа
func (r *Repository) GetByBalanceOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"balance_order_id": orderID}, "GetByBalanceOrderID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}
	return b, nil
}

// GetByUserID получает историю бронирований пользователя, новые даты первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, time_label DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter получает бронирования журнала с фильтрацией по периоду и статусу.
// Используется административной панелью.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.LedgerFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, time_label DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveForSlot подсчитывает активные бронирования слота (date, timeLabel).
// Внутри транзакции строки блокируются через FOR UPDATE; фантомные вставки
// конкурентов перехватывает SERIALIZABLE-изоляция менеджера транзакций -
// вместе это даёт атомарную проверку «count < C» для confirm-advance.
func (r *Repository) CountActiveForSlot(ctx context.Context, date time.Time, timeLabel types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date,
			"time_label":   timeLabel,
			"status":       activeStatusStrings(),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountActiveForSlot - scan row: %v", ErrScanRow, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveForSlot - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveByDate возвращает количество активных бронирований на дату,
// сгруппированное по времени слота. Читающий путь для сетки доступности.
func (r *Repository) CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_label", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": date,
			"status":       activeStatusStrings(),
		}).
		GroupBy("time_label").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var label types.TimeString
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDate - scan row: %v", ErrScanRow, err)
		}
		counts[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// MarkServiceDone условный переход Confirmed → Service Done.
// WHERE по текущему статусу гарантирует, что гонка двух вызовов даёт ровно
// одного победителя; проигравший получает ErrNotInExpectedStatus.
func (r *Repository) MarkServiceDone(ctx context.Context, id int64) error {
	return r.conditionalUpdate(ctx, "MarkServiceDone", id, domain.StatusConfirmed, map[string]interface{}{
		"status":          domain.StatusServiceDone,
		"service_done_at": squirrel.Expr("NOW()"),
		"updated_at":      squirrel.Expr("NOW()"),
	})
}

// SetBalanceOrder записывает идентификатор балансового заказа.
// Допустим только в статусе Service Done; повторный запрос баланса
// замещает предыдущий неоплаченный заказ.
func (r *Repository) SetBalanceOrder(ctx context.Context, id int64, orderID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("balance_order_id", orderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusServiceDone}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetBalanceOrder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("%w: SetBalanceOrder - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "SetBalanceOrder")
}

// CompleteWithBalancePayment условный переход Service Done → Completed
// по идентификатору балансового заказа, с записью payment id
func (r *Repository) CompleteWithBalancePayment(ctx context.Context, balanceOrderID, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("balance_payment_id", paymentID).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"balance_order_id": balanceOrderID,
			"status":           domain.StatusServiceDone,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CompleteWithBalancePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CompleteWithBalancePayment - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "CompleteWithBalancePayment")
}

// Cancel отменяет бронирование с указанием причины.
// Разрешён только из статусов, допускающих отмену; смена статуса сама по себе
// освобождает единицу ёмкости слота (ёмкость считается по активным строкам).
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": []string{string(domain.StatusScheduled), string(domain.StatusConfirmed)},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(result, "Cancel")
}

// Stats собирает сводные показатели журнала одним запросом
func (r *Repository) Stats(ctx context.Context, filter domain.LedgerFilter) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Собрано: аванс всех активных строк плюс баланс завершённых.
	// К оплате: баланс подтверждённых и выполненных, но не завершённых.
	selectBuilder := psqlbuilder.Select(
		"COUNT(*)",
		`COALESCE(SUM(advance_amount) FILTER (WHERE status IN ('Confirmed', 'Service Done', 'Completed')), 0) +
		 COALESCE(SUM(balance_amount) FILTER (WHERE status = 'Completed'), 0)`,
		`COALESCE(SUM(balance_amount) FILTER (WHERE status IN ('Confirmed', 'Service Done')), 0)`,
	).From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.CollectedRevenue,
		&stats.PendingBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// conditionalUpdate выполняет UPDATE c условием по текущему статусу
func (r *Repository) conditionalUpdate(ctx context.Context, op string, id int64, expected domain.BookingStatus, sets map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Where(squirrel.Eq{"id": id, "status": expected})
	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return r.checkAffected(result, op)
}

// checkAffected транслирует rowsAffected == 0 в ErrNotInExpectedStatus.
// Вызывающий слой различает «не найдено» и «не тот статус» повторным чтением.
func (r *Repository) checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotInExpectedStatus
	}
	return nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку журнала
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ServiceID,
		&b.ServiceName,
		&b.BookingDate,
		&b.TimeLabel,
		&b.Status,
		&b.TotalAmount,
		&b.AdvanceAmount,
		&b.BalanceAmount,
		&b.AdvanceOrderID,
		&b.AdvancePaymentID,
		&b.BalanceOrderID,
		&b.BalancePaymentID,
		&b.Notes,
		&b.StyleRef,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.ServiceDoneAt,
		&b.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
