package get_available_slots

import (
	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// takenTimes собирает время всех записей дня
func takenTimes(items []kv.Item) map[types.TimeString]struct{} {
	taken := make(map[types.TimeString]struct{}, len(items))
	for _, item := range items {
		_, startTime, _, ok := domain.ParseAppointmentSortKey(item.SK)
		if !ok {
			startTime = item.Attr(domain.AttrTime)
		}
		if startTime != "" {
			taken[types.TimeString(startTime)] = struct{}{}
		}
	}
	return taken
}

// splitGrid делит сетку на свободные и занятые слоты, сохраняя порядок сетки
func splitGrid(grid []types.TimeString, taken map[types.TimeString]struct{}) (free, busy []types.TimeString) {
	free = make([]types.TimeString, 0, len(grid))
	busy = make([]types.TimeString, 0, len(taken))
	for _, slot := range grid {
		if _, ok := taken[slot]; ok {
			busy = append(busy, slot)
			continue
		}
		free = append(free, slot)
	}
	return free, busy
}
