package domain

import "github.com/m04kA/SMC-WorkshopAppointments/pkg/types"

// Default schedule values, used when no hours record is stored
const (
	DefaultOpenTime            types.TimeString = "09:00"
	DefaultCloseTime           types.TimeString = "18:00"
	DefaultSlotDurationMinutes                  = 30
)

// Booking defaults for optional intent slots
const (
	DefaultShopID       = "Main"
	DefaultService      = "Mantenimiento"
	DefaultCustomerName = "Cliente"
	DefaultVehiclePlate = "-"
)

// AppointmentIDPrefix prefixes every generated appointment id ("A-1F3C9B2E")
const AppointmentIDPrefix = "A-"

// AppointmentIDLength is the number of random uppercase hex characters after the prefix
const AppointmentIDLength = 8

// DefaultMaxListedSlots caps the number of free slots read back to the customer
const DefaultMaxListedSlots = 10

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
