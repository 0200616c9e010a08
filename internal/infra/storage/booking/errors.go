package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateActiveBooking возвращается при попытке создать второе активное
	// бронирование того же пользователя на той же парковке
	ErrDuplicateActiveBooking = errors.New("booking.repository: duplicate active booking")

	// ErrStateConflict возвращается, когда бронирование уже не активно
	// и завершить или отменить его нельзя
	ErrStateConflict = errors.New("booking.repository: booking state conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
