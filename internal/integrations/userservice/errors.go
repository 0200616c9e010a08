package userservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда у пользователя нет выбранного транспорта
	ErrVehicleNotFound = errors.New("user has no selected vehicle")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и категорию транспорта нужно брать из запроса
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
