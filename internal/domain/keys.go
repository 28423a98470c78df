package domain

import "strings"

// Storage key layout.
//
//	shop view:      pk = SHOP#<shopId>       sk = APPT#<date>#<time>#<appointmentId>
//	customer view:  pk = CUSTOMER#<phone>    sk = APPT#<date>#<time>#<appointmentId>
//	slot guard:     pk = SHOP#<shopId>       sk = SLOT#<date>#<time>
//	hours:          pk = INFO                sk = HOURS | HOURS#<shopId>
//
// Dates and times are zero-padded, so sort key order equals chronological order.
const (
	keySeparator = "#"

	shopPartitionPrefix     = "SHOP#"
	customerPartitionPrefix = "CUSTOMER#"

	AppointmentKeyPrefix = "APPT#"
	SlotGuardKeyPrefix   = "SLOT#"

	ConfigPartition    = "INFO"
	GlobalHoursSortKey = "HOURS"
)

// ShopPartition returns the partition key of the shop view
func ShopPartition(shopID string) string {
	return shopPartitionPrefix + shopID
}

// CustomerPartition returns the partition key of the customer view
func CustomerPartition(phone string) string {
	return customerPartitionPrefix + phone
}

// IsShopPartition reports whether pk belongs to the shop view
func IsShopPartition(pk string) bool {
	return strings.HasPrefix(pk, shopPartitionPrefix)
}

// AppointmentSortKey encodes (date, time, id) as a sort key
func AppointmentSortKey(date, time, appointmentID string) string {
	return AppointmentKeyPrefix + date + keySeparator + time + keySeparator + appointmentID
}

// DatePrefix matches every appointment of a day
func DatePrefix(date string) string {
	return AppointmentKeyPrefix + date + keySeparator
}

// SlotPrefix matches every appointment of a (date, time) slot
func SlotPrefix(date, time string) string {
	return DatePrefix(date) + time + keySeparator
}

// SlotGuardSortKey is the uniqueness record of a (date, time) slot
func SlotGuardSortKey(date, time string) string {
	return SlotGuardKeyPrefix + date + keySeparator + time
}

// ShopHoursSortKey is the hours record of a single shop
func ShopHoursSortKey(shopID string) string {
	return GlobalHoursSortKey + keySeparator + shopID
}

// HasAppointmentID reports whether the sort key ends with the given appointment id
func HasAppointmentID(sortKey, appointmentID string) bool {
	return appointmentID != "" && strings.HasSuffix(sortKey, keySeparator+appointmentID)
}

// ParseAppointmentSortKey splits APPT#<date>#<time>#<id>
func ParseAppointmentSortKey(sortKey string) (date, time, appointmentID string, ok bool) {
	if !strings.HasPrefix(sortKey, AppointmentKeyPrefix) {
		return "", "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(sortKey, AppointmentKeyPrefix), keySeparator, 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
