package schedule

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// Атрибуты записи INFO/HOURS
const (
	AttrOpen        = "open"
	AttrClose       = "close"
	AttrSlotMinutes = "slotMinutes"
)

func hoursSortKey(shopID string) string {
	if shopID == "" {
		return domain.GlobalHoursSortKey
	}
	return domain.ShopHoursSortKey(shopID)
}

// configFromItem разбирает запись часов работы. Отсутствующий slotMinutes = 30
func configFromItem(shopID string, item *kv.Item) (domain.ScheduleConfig, error) {
	open, err := types.NewTimeStringFromString(item.Attr(AttrOpen))
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("%w: %s/%s open: %v", ErrConfigInvalid, item.PK, item.SK, err)
	}
	closeTime, err := types.NewTimeStringFromString(item.Attr(AttrClose))
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("%w: %s/%s close: %v", ErrConfigInvalid, item.PK, item.SK, err)
	}

	slotMinutes := domain.DefaultSlotDurationMinutes
	if raw := item.Attr(AttrSlotMinutes); raw != "" {
		slotMinutes, err = strconv.Atoi(raw)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("%w: %s/%s slotMinutes %q", ErrConfigInvalid, item.PK, item.SK, raw)
		}
	}

	return domain.ScheduleConfig{
		ShopID:              shopID,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: slotMinutes,
	}, nil
}

func itemFromConfig(cfg domain.ScheduleConfig) kv.Item {
	return kv.Item{
		PK: domain.ConfigPartition,
		SK: hoursSortKey(cfg.ShopID),
		Attrs: map[string]string{
			AttrOpen:        cfg.OpenTime.String(),
			AttrClose:       cfg.CloseTime.String(),
			AttrSlotMinutes: strconv.Itoa(cfg.SlotDurationMinutes),
		},
	}
}
