package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не является ни клиентом
	// бронирования, ни владельцем парковки
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInvalidStateTransition возвращается при попытке отменить неактивное бронирование
	ErrInvalidStateTransition = errors.New("cancel_booking: booking is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
