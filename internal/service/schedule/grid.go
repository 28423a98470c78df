package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// GenerateSlots строит сетку слотов дня от открытия до закрытия включительно с шагом SlotDurationMinutes.
// Сетка не зависит от даты: часы работы одинаковы для всех дней.
// Закрытие раньше открытия дает пустую сетку, переход через полночь не допускается.
func GenerateSlots(cfg domain.ScheduleConfig) ([]types.TimeString, error) {
	if cfg.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", ErrConfigInvalid, cfg.SlotDurationMinutes)
	}
	if err := cfg.OpenTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrConfigInvalid, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrConfigInvalid, err)
	}

	slots := make([]types.TimeString, 0)
	current := cfg.OpenTime
	for !current.IsAfter(cfg.CloseTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(cfg.SlotDurationMinutes)
		if errors.Is(err, types.ErrTimeOverflow) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
		current = next
	}

	return slots, nil
}
