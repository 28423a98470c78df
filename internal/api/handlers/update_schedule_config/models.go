package update_schedule_config

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// UpdateHoursRequest HTTP request model
type UpdateHoursRequest struct {
	OpenTime            string `json:"openTime"`  // "09:00"
	CloseTime           string `json:"closeTime"` // "18:00"
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
}

// HoursResponse сохраненные часы работы
type HoursResponse struct {
	ShopID              string `json:"shopId,omitempty"`
	Global              bool   `json:"global"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// ToDomainConfig конвертирует HTTP запрос в расписание.
// Пустой shopID - общие часы всех мастерских
func (r *UpdateHoursRequest) ToDomainConfig(shopID string) (domain.ScheduleConfig, error) {
	open, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("openTime: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("closeTime: %w", err)
	}

	slot := domain.DefaultSlotDurationMinutes
	if r.SlotDurationMinutes != nil {
		slot = *r.SlotDurationMinutes
	}

	return domain.ScheduleConfig{
		ShopID:              shopID,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: slot,
	}, nil
}

// FromDomainConfig конвертирует расписание в HTTP response
func FromDomainConfig(cfg domain.ScheduleConfig) *HoursResponse {
	return &HoursResponse{
		ShopID:              cfg.ShopID,
		Global:              cfg.IsGlobal(),
		OpenTime:            cfg.OpenTime.String(),
		CloseTime:           cfg.CloseTime.String(),
		SlotDurationMinutes: cfg.SlotDurationMinutes,
	}
}
