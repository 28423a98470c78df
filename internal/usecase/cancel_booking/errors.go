package cancel_booking

import "errors"

var (
	// ErrMissingFields возвращается, когда нет ни ID записи, ни пары телефон + дата
	ErrMissingFields = errors.New("cancel_booking: appointment id or phone and date required")

	// ErrInvalidFormat возвращается при некорректном формате даты
	ErrInvalidFormat = errors.New("cancel_booking: invalid date format")

	// ErrNotFound возвращается, когда подходящая запись не найдена
	ErrNotFound = errors.New("cancel_booking: appointment not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("cancel_booking: store unavailable")
)
