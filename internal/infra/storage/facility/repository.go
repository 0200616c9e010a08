package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// PostgreSQL ограничивает запрос 65535 параметрами, поэтому слоты вставляются батчами.
// 1000 строк по 7 колонок = 7000 параметров на запрос.
const slotInsertBatchSize = 1000

// Repository репозиторий для работы с парковками и их слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает парковку вместе со сгенерированной сеткой слотов
// Если в контексте передана активная транзакция, использует её:
// вставка парковки и слотов должна быть атомарной
func (r *Repository) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	categories := make([]string, len(facility.Categories))
	for i, c := range facility.Categories {
		categories[i] = string(c)
	}

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"owner_id",
			"name",
			"floor_count",
			"row_count",
			"column_count",
			"categories",
			"base_rate",
			"dynamic_pricing",
		).
		Values(
			facility.OwnerID,
			facility.Name,
			facility.Floors,
			facility.Rows,
			facility.Columns,
			pq.Array(categories),
			facility.BaseRate,
			facility.DynamicPricing,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertSlots(ctx, executor, facility.ID, facility.Slots); err != nil {
		return nil, err
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return facility, nil
}

// GetByID получает парковку по ID вместе со всеми слотами
// Внутри транзакции блокирует строку парковки (FOR UPDATE):
// создание бронирования считает занятость и не должно гоняться с другими записями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"floor_count",
		"row_count",
		"column_count",
		"categories",
		"base_rate",
		"dynamic_pricing",
		"created_at",
		"updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var facility domain.Facility
	var categories pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.OwnerID,
		&facility.Name,
		&facility.Floors,
		&facility.Rows,
		&facility.Columns,
		&categories,
		&facility.BaseRate,
		&facility.DynamicPricing,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	facility.Categories = make([]domain.VehicleCategory, len(categories))
	for i, c := range categories {
		facility.Categories[i] = domain.VehicleCategory(c)
	}
	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	slots, err := r.getSlots(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	facility.Slots = slots

	return &facility, nil
}

// List получает список всех парковок без слотов
// Слоты подгружаются отдельно через GetSlotCounts, полная сетка для списка не нужна
func (r *Repository) List(ctx context.Context) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"floor_count",
		"row_count",
		"column_count",
		"categories",
		"base_rate",
		"dynamic_pricing",
		"created_at",
		"updated_at",
	).
		From("facilities").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		var facility domain.Facility
		var categories pq.StringArray
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&facility.ID,
			&facility.OwnerID,
			&facility.Name,
			&facility.Floors,
			&facility.Rows,
			&facility.Columns,
			&categories,
			&facility.BaseRate,
			&facility.DynamicPricing,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan facility: %v", ErrScanRow, err)
		}

		facility.Categories = make([]domain.VehicleCategory, len(categories))
		for i, c := range categories {
			facility.Categories[i] = domain.VehicleCategory(c)
		}
		facility.CreatedAt = createdAt.Time
		facility.UpdatedAt = updatedAt.Time

		facilities = append(facilities, &facility)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

// GetOwnerID получает ID владельца парковки
// Используется для проверки прав без загрузки всей сетки слотов
func (r *Repository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("owner_id").
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	var ownerID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ownerID)

	if err == sql.ErrNoRows {
		return 0, ErrFacilityNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetOwnerID - scan owner_id: %v", ErrScanRow, err)
	}

	return ownerID, nil
}

// GetSlotCounts получает агрегаты по статусам слотов для набора парковок
// Возвращает map facility_id -> счётчики; парковки без слотов в map отсутствуют
func (r *Repository) GetSlotCounts(ctx context.Context, facilityIDs []int64) (map[int64]domain.SlotCounts, error) {
	counts := make(map[int64]domain.SlotCounts, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("facility_id", "status", "COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"facility_id": facilityIDs}).
		GroupBy("facility_id", "status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var facilityID int64
		var status domain.SlotStatus
		var count int

		if err := rows.Scan(&facilityID, &status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetSlotCounts - scan row: %v", ErrScanRow, err)
		}

		c := counts[facilityID]
		c.Total += count
		switch status {
		case domain.SlotStatusAvailable:
			c.Available += count
		case domain.SlotStatusReserved:
			c.Reserved += count
		case domain.SlotStatusOccupied:
			c.Occupied += count
		}
		counts[facilityID] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotCounts - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateConfig обновляет изменяемые параметры парковки: название, тариф, динамическое ценообразование
// Геометрия сетки после создания не меняется
func (r *Repository) UpdateConfig(ctx context.Context, id int64, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", facility.Name).
		Set("base_rate", facility.BaseRate).
		Set("dynamic_pricing", facility.DynamicPricing).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}

	facility.ID = id
	facility.UpdatedAt = updatedAt.Time

	return facility, nil
}

// ReserveSlot переводит слот из available в reserved атомарным UPDATE
// Условие по статусу в WHERE гарантирует, что из двух конкурентных бронирований
// слот получит ровно одно: проигравшее увидит 0 затронутых строк и ErrSlotNotAvailable
func (r *Repository) ReserveSlot(ctx context.Context, facilityID int64, slotID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotStatusReserved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"facility_id": facilityID,
			"slot_id":     slotID,
			"status":      domain.SlotStatusAvailable,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// ReleaseSlot возвращает слот в available при завершении или отмене бронирования
// Освобождение идемпотентно: повторный вызов для уже свободного слота не ошибка
func (r *Repository) ReleaseSlot(ctx context.Context, facilityID int64, slotID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotStatusAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"facility_id": facilityID,
			"slot_id":     slotID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ChangeSlotStatus переводит слот из статуса from в статус to
// Используется для ручного управления слотом владельцем парковки
// Если текущий статус не совпадает с from, возвращает ErrSlotStateConflict
func (r *Repository) ChangeSlotStatus(ctx context.Context, facilityID int64, slotID string, from, to domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"facility_id": facilityID,
			"slot_id":     slotID,
			"status":      from,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ChangeSlotStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ChangeSlotStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ChangeSlotStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotStateConflict
	}

	return nil
}

// getSlots загружает слоты парковки
// Порядок обхода совпадает с порядком генерации (этаж -> ряд -> место):
// от него зависит разрешение ничьих при подборе оптимального слота
func (r *Repository) getSlots(ctx context.Context, executor DBExecutor, facilityID int64) ([]domain.Slot, error) {
	query, args, err := psqlbuilder.Select(
		"slot_id",
		"floor_no",
		"row_no",
		"col_no",
		"category",
		"status",
	).
		From("slots").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("floor_no ASC", "row_no ASC", "col_no ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot

		err := rows.Scan(
			&slot.ID,
			&slot.Floor,
			&slot.Row,
			&slot.Column,
			&slot.Category,
			&slot.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getSlots - scan slot: %v", ErrScanRow, err)
		}

		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// insertSlots вставляет слоты парковки батчами
func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, facilityID int64, slots []domain.Slot) error {
	for start := 0; start < len(slots); start += slotInsertBatchSize {
		end := start + slotInsertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		insertBuilder := psqlbuilder.Insert("slots").
			Columns(
				"facility_id",
				"slot_id",
				"floor_no",
				"row_no",
				"col_no",
				"category",
				"status",
			)

		for i := start; i < end; i++ {
			slot := slots[i]
			insertBuilder = insertBuilder.Values(
				facilityID,
				slot.ID,
				slot.Floor,
				slot.Row,
				slot.Column,
				slot.Category,
				slot.Status,
			)
		}

		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insertSlots - execute insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}
