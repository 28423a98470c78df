package domain

import "github.com/m04kA/SMC-WorkshopAppointments/pkg/types"

// ReservationView identifies one of the two denormalized copies of a reservation
type ReservationView string

const (
	ViewShop     ReservationView = "shop"
	ViewCustomer ReservationView = "customer"
)

// Stored attribute names, shared by both views
const (
	AttrAppointmentID = "appointmentId"
	AttrService       = "service"
	AttrDate          = "date"
	AttrTime          = "time"
	AttrName          = "name"
	AttrPhone         = "phone"
	AttrPlate         = "plate"
	AttrShop          = "shop"
)

// Reservation represents a booked slot. It is never mutated: cancellation deletes it.
type Reservation struct {
	AppointmentID string
	ShopID        string
	Date          string // YYYY-MM-DD
	Time          types.TimeString
	Service       string
	CustomerName  string
	CustomerPhone string
	VehiclePlate  string
}

// SortKey returns the sort key shared by both views
func (r *Reservation) SortKey() string {
	return AppointmentSortKey(r.Date, r.Time.String(), r.AppointmentID)
}

// PartitionKey returns the partition key of the requested view
func (r *Reservation) PartitionKey(view ReservationView) string {
	if view == ViewCustomer {
		return CustomerPartition(r.CustomerPhone)
	}
	return ShopPartition(r.ShopID)
}

// Attributes returns the stored attributes. Both views carry the phone and the shop,
// so either copy is enough to locate the other one.
func (r *Reservation) Attributes() map[string]string {
	return map[string]string{
		AttrAppointmentID: r.AppointmentID,
		AttrService:       r.Service,
		AttrDate:          r.Date,
		AttrTime:          r.Time.String(),
		AttrName:          r.CustomerName,
		AttrPhone:         r.CustomerPhone,
		AttrPlate:         r.VehiclePlate,
		AttrShop:          r.ShopID,
	}
}

// ReservationFromRecord rebuilds a reservation from a stored view.
// Key parts win over attributes, since the key is what queries match on.
func ReservationFromRecord(partitionKey, sortKey string, attrs map[string]string) (*Reservation, bool) {
	date, time, id, ok := ParseAppointmentSortKey(sortKey)
	if !ok {
		return nil, false
	}

	r := &Reservation{
		AppointmentID: id,
		ShopID:        attrs[AttrShop],
		Date:          date,
		Time:          types.TimeString(time),
		Service:       attrs[AttrService],
		CustomerName:  attrs[AttrName],
		CustomerPhone: attrs[AttrPhone],
		VehiclePlate:  attrs[AttrPlate],
	}
	if IsShopPartition(partitionKey) {
		r.ShopID = partitionKey[len(shopPartitionPrefix):]
	} else {
		r.CustomerPhone = partitionKey[len(customerPartitionPrefix):]
	}
	return r, true
}

// CounterpartKey returns the key of the other view of the record stored at (partitionKey, sortKey).
// ok is false when the record does not carry enough data to locate it.
func CounterpartKey(partitionKey, sortKey string, attrs map[string]string) (pk string, ok bool) {
	if IsShopPartition(partitionKey) {
		if attrs[AttrPhone] == "" {
			return "", false
		}
		return CustomerPartition(attrs[AttrPhone]), true
	}
	if attrs[AttrShop] == "" {
		return "", false
	}
	return ShopPartition(attrs[AttrShop]), true
}
