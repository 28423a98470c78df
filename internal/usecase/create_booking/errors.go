package create_booking

import "errors"

var (
	// ErrMissingFields возвращается, когда не указаны дата, время или телефон
	ErrMissingFields = errors.New("create_booking: missing required fields")

	// ErrInvalidFormat возвращается при некорректном формате даты или времени
	ErrInvalidFormat = errors.New("create_booking: invalid date or time format")

	// ErrOutOfHours возвращается, когда время вне часов работы мастерской
	ErrOutOfHours = errors.New("create_booking: time is out of opening hours")

	// ErrSlotTaken возвращается, когда слот уже занят
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrConfigInvalid возвращается при некорректном расписании мастерской
	ErrConfigInvalid = errors.New("create_booking: invalid schedule config")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
