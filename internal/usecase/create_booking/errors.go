package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда парковка не найдена
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrCategoryNotSupported возвращается, когда парковка не принимает категорию транспорта
	ErrCategoryNotSupported = errors.New("create_booking: vehicle category is not supported by this facility")

	// ErrCategoryRequired возвращается, когда категорию не удалось определить
	// ни из запроса, ни из выбранного транспорта пользователя
	ErrCategoryRequired = errors.New("create_booking: vehicle category is required")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот не существует,
	// занят или не подходит по категории
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrNoSlotAvailable возвращается, когда на парковке нет ни одного свободного слота категории
	ErrNoSlotAvailable = errors.New("create_booking: no available slot for this category")

	// ErrDuplicateActiveBooking возвращается при попытке создать второе активное
	// бронирование на той же парковке
	ErrDuplicateActiveBooking = errors.New("create_booking: customer already has an active booking at this facility")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
