package domain

import "github.com/m04kA/SMC-WorkshopAppointments/pkg/types"

// AvailabilitySnapshot is the slot grid of a day minus the times already reserved
type AvailabilitySnapshot struct {
	ShopID string
	Date   string
	Config ScheduleConfig
	Free   []types.TimeString
	Taken  []types.TimeString
}

// IsFullyBooked returns true if no slot is left for the day
func (s *AvailabilitySnapshot) IsFullyBooked() bool {
	return len(s.Free) == 0
}
