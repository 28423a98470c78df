package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("reservations: appointment not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("reservations: store unavailable")
)
