package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда парковка не найдена
	ErrFacilityNotFound = errors.New("facility.repository: facility not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("facility.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или зарезервирован
	ErrSlotNotAvailable = errors.New("facility.repository: slot not available")

	// ErrSlotStateConflict возвращается, когда статус слота изменился конкурентно
	ErrSlotStateConflict = errors.New("facility.repository: slot state conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
