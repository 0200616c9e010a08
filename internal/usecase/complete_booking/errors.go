package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не является ни клиентом
	// бронирования, ни владельцем парковки
	ErrAccessDenied = errors.New("complete_booking: access denied")

	// ErrInvalidStateTransition возвращается при попытке завершить неактивное бронирование
	ErrInvalidStateTransition = errors.New("complete_booking: booking is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
