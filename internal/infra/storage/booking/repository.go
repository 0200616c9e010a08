package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её:
// вставка бронирования должна попасть в одну транзакцию с резервированием слота.
//
// Уникальный индекс uq_bookings_active_customer_facility не пропускает второе
// активное бронирование пользователя на той же парковке, даже если проверка
// до вставки его не увидела. Нарушение индекса мапится в ErrDuplicateActiveBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"facility_id",
			"slot_id",
			"vehicle_category",
			"vehicle_plate",
			"start_time",
			"status",
			"payment_status",
			"rate_snapshot",
			"base_rate",
			"occupancy_multiplier",
			"occupancy_label",
			"peak_multiplier",
			"peak_label",
		).
		Values(
			booking.CustomerID,
			booking.FacilityID,
			booking.SlotID,
			booking.VehicleCategory,
			booking.VehiclePlate,
			booking.StartTime,
			booking.Status,
			booking.PaymentStatus,
			booking.RateSnapshot,
			booking.Pricing.BaseRate,
			booking.Pricing.OccupancyMultiplier,
			booking.Pricing.OccupancyLabel,
			booking.Pricing.PeakMultiplier,
			booking.Pricing.PeakLabel,
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
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateActiveBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции блокирует строку (FOR UPDATE):
// завершение и отмена читают бронирование перед обновлением статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByFacilityWithFilter получает бронирования парковки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду начала бронирования (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению отменённых бронирований (IncludeInactive)
//
// Примеры использования:
//
//  1. Активная история парковки:
//     filter := domain.FacilityBookingsFilter{FacilityID: 123}
//
//  2. Бронирования за период:
//     start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
//     end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
//     filter := domain.FacilityBookingsFilter{FacilityID: 123, StartDate: &start, EndDate: &end}
//
//  3. Только завершённые:
//     status := domain.StatusCompleted
//     filter := domain.FacilityBookingsFilter{FacilityID: 123, Status: &status}
//
//  4. Вся история включая отменённые:
//     filter := domain.FacilityBookingsFilter{FacilityID: 123, IncludeInactive: true}
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"facility_id": filter.FacilityID})

	// Фильтрация по периоду начала
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasActiveBooking проверяет, есть ли у пользователя активное бронирование на парковке
// Проверка до вставки даёт понятную ошибку заранее, гонки закрывает уникальный индекс
func (r *Repository) HasActiveBooking(ctx context.Context, customerID, facilityID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"customer_id": customerID,
			"facility_id": facilityID,
			"status":      domain.StatusActive,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveBooking - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveBooking - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Complete переводит активное бронирование в completed с рассчитанной стоимостью
// Условие по статусу в WHERE не даёт завершить уже завершённое или отменённое
// бронирование: в этом случае возвращается ErrStateConflict
func (r *Repository) Complete(ctx context.Context, id int64, endTime time.Time, durationMinutes int, totalAmount float64, paymentRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("payment_status", domain.PaymentPaid).
		Set("payment_ref", paymentRef).
		Set("end_time", endTime).
		Set("duration_minutes", durationMinutes).
		Set("total_amount", totalAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.StatusActive,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStateConflict
	}

	return nil
}

// Cancel переводит активное бронирование в cancelled
// Стоимость обнуляется, платёж отменяется, время завершения фиксируется
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("payment_status", domain.PaymentCancelled).
		Set("cancellation_reason", reason).
		Set("end_time", cancelledAt).
		Set("cancelled_at", cancelledAt).
		Set("duration_minutes", 0).
		Set("total_amount", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.StatusActive,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStateConflict
	}

	return nil
}

// bookingColumns возвращает полный список колонок бронирования для SELECT
func bookingColumns() []string {
	return []string{
		"id",
		"customer_id",
		"facility_id",
		"slot_id",
		"vehicle_category",
		"vehicle_plate",
		"start_time",
		"end_time",
		"status",
		"payment_status",
		"payment_ref",
		"rate_snapshot",
		"base_rate",
		"occupancy_multiplier",
		"occupancy_label",
		"peak_multiplier",
		"peak_label",
		"duration_minutes",
		"total_amount",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	}
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.FacilityID,
		&booking.SlotID,
		&booking.VehicleCategory,
		&booking.VehiclePlate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentRef,
		&booking.RateSnapshot,
		&booking.Pricing.BaseRate,
		&booking.Pricing.OccupancyMultiplier,
		&booking.Pricing.OccupancyLabel,
		&booking.Pricing.PeakMultiplier,
		&booking.Pricing.PeakLabel,
		&booking.DurationMinutes,
		&booking.TotalAmount,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Pricing.FinalRate = booking.RateSnapshot
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
