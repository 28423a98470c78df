package domain

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// ScheduleConfig holds the operating hours of a shop (or of all shops) and the slot step
type ScheduleConfig struct {
	ShopID              string // empty = global hours
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	IsDefault           bool // true when no stored record was found
}

// DefaultScheduleConfig returns the hardcoded 09:00-18:00 / 30 min schedule
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		IsDefault:           true,
	}
}

// IsGlobal returns true if the config applies to every shop
func (c *ScheduleConfig) IsGlobal() bool {
	return c.ShopID == ""
}

// Contains returns true if t lies within [OpenTime, CloseTime]
func (c *ScheduleConfig) Contains(t types.TimeString) bool {
	return t.Between(c.OpenTime, c.CloseTime)
}

// Validate checks the config before it is stored
func (c *ScheduleConfig) Validate() error {
	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("open time: %w", err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("close time: %w", err)
	}
	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("slot duration must be positive, got %d", c.SlotDurationMinutes)
	}
	return nil
}
