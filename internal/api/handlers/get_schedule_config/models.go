package get_schedule_config

import "github.com/m04kA/SMC-WorkshopAppointments/internal/domain"

const (
	SourceShop    = "shop"
	SourceGlobal  = "global"
	SourceDefault = "default"
)

// HoursResponse действующие часы работы мастерской
type HoursResponse struct {
	ShopID              string `json:"shopId"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	// Source откуда взяты часы: shop, global или default
	Source string `json:"source"`
}

// FromDomainConfig конвертирует расписание в HTTP response
func FromDomainConfig(shopID string, cfg domain.ScheduleConfig) *HoursResponse {
	source := SourceShop
	switch {
	case cfg.IsDefault:
		source = SourceDefault
	case cfg.IsGlobal():
		source = SourceGlobal
	}

	return &HoursResponse{
		ShopID:              shopID,
		OpenTime:            cfg.OpenTime.String(),
		CloseTime:           cfg.CloseTime.String(),
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		Source:              source,
	}
}
