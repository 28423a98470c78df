package get_available_slots

import "errors"

var (
	// ErrMissingFields возвращается, когда не указана дата
	ErrMissingFields = errors.New("get_available_slots: date is required")

	// ErrInvalidFormat возвращается при некорректном формате даты
	ErrInvalidFormat = errors.New("get_available_slots: invalid date format")

	// ErrConfigInvalid возвращается при некорректном расписании мастерской
	ErrConfigInvalid = errors.New("get_available_slots: invalid schedule config")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
