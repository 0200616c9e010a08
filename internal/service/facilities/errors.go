package facilities

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда парковка не найдена
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrSlotNotFound возвращается, когда слот не найден на парковке
	ErrSlotNotFound = errors.New("slot not found")

	// ErrNoSlotAvailable возвращается, когда нет свободных слотов запрошенной категории
	ErrNoSlotAvailable = errors.New("no slot available for requested category")

	// ErrCategoryNotSupported возвращается, когда парковка не обслуживает категорию транспорта
	ErrCategoryNotSupported = errors.New("vehicle category not supported by facility")

	// ErrSlotHasActiveBooking возвращается при попытке вручную изменить слот,
	// зарезервированный активным бронированием
	ErrSlotHasActiveBooking = errors.New("slot is reserved by an active booking")

	// ErrSlotStateConflict возвращается, когда статус слота изменился конкурентно
	ErrSlotStateConflict = errors.New("slot status changed concurrently")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
