package schedule

import "errors"

var (
	// ErrConfigInvalid возвращается, когда сохраненное расписание не разбирается
	// или шаг слота не положителен
	ErrConfigInvalid = errors.New("schedule: invalid schedule config")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("schedule: store unavailable")
)
