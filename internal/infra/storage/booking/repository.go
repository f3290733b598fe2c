package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"user_id",
	"slot_id",
	"sub_court_index",
	"game_mode",
	"players_count",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое активное бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её: при создании с проверкой вместимости корта вызов обязан
// происходить внутри сериализуемой транзакции аллокатора.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"slot_id",
			"sub_court_index",
			"game_mode",
			"players_count",
		).
		Values(
			booking.UserID,
			booking.SlotID,
			booking.SubCourtIndex,
			booking.GameMode,
			booking.PlayersCount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveBySlot получает все активные бронирования слота.
// Внутри транзакции строки блокируются FOR UPDATE, чтобы конкурентные
// допуски на тот же слот сериализовались.
func (r *Repository) GetActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Booking, error) {
	return r.listActive(ctx, "GetActiveBySlot", squirrel.Eq{"slot_id": slotID})
}

// GetActiveBySlotAndCourt получает активные бронирования конкретного корта слота
func (r *Repository) GetActiveBySlotAndCourt(ctx context.Context, slotID int64, subCourtIndex int) ([]*domain.Booking, error) {
	return r.listActive(ctx, "GetActiveBySlotAndCourt", squirrel.Eq{
		"slot_id":         slotID,
		"sub_court_index": subCourtIndex,
	})
}

// HasActiveBySlotAndUser проверяет наличие активного бронирования пользователя
// на слот по ЛЮБОМУ корту (правило "одно бронирование на окно")
func (r *Repository) HasActiveBySlotAndUser(ctx context.Context, slotID int64, userID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"slot_id":      slotID,
			"user_id":      userID,
			"cancelled_at": nil,
		}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveBySlotAndUser - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveBySlotAndUser - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetActiveByUser получает активные бронирования пользователя, новые первыми
func (r *Repository) GetActiveByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "cancelled_at": nil}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActive получает все активные бронирования (для администратора)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"cancelled_at": nil}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOccupancyBySlot возвращает занятость слота: sub_court_index -> сумма
// players_count активных бронирований. Используется проекцией доступности
// и списком слотов; решение о допуске НЕ опирается на этот метод.
func (r *Repository) GetOccupancyBySlot(ctx context.Context, slotID int64) (map[int]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sub_court_index",
		"COALESCE(SUM(players_count), 0)",
	).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID, "cancelled_at": nil}).
		GroupBy("sub_court_index").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyBySlot - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyBySlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancy := make(map[int]int)
	for rows.Next() {
		var index, players int
		if err := rows.Scan(&index, &players); err != nil {
			return nil, fmt.Errorf("%w: GetOccupancyBySlot - scan row: %w", ErrScanRow, err)
		}
		occupancy[index] = players
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupancyBySlot - rows error: %w", ErrScanRow, err)
	}

	return occupancy, nil
}

// Cancel помечает бронирование отменённым, устанавливая cancelled_at.
// Условие cancelled_at IS NULL делает отмену монотонной: повторная отмена
// не меняет состояние и возвращает ErrBookingNotFound.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "cancelled_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteBySlotIDs удаляет все бронирования указанных слотов (для sweeper)
func (r *Repository) DeleteBySlotIDs(ctx context.Context, slotIDs []int64) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotIDs - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotIDs - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySlotIDs - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// listActive общий запрос активных бронирований с блокировкой внутри транзакции
func (r *Repository) listActive(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where["cancelled_at"] = nil

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("id ASC")

	// Внутри транзакции аллокатора блокируем прочитанные строки,
	// чтобы конкурентная отмена/допуск на тот же корт сериализовались
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.SubCourtIndex,
		&booking.GameMode,
		&booking.PlayersCount,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.SubCourtIndex,
			&booking.GameMode,
			&booking.PlayersCount,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
