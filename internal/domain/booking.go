package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// BookingStatus represents the status of a booking on the backend
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusAbandoned BookingStatus = "abandoned"
	StatusDraft     BookingStatus = "draft"
)

// Reservation is one booked time slot of a booking
type Reservation struct {
	ID         int64
	BookingID  int64
	ServiceID  int64
	EmployeeID int64
	LocationID int64
	Date       time.Time
	Time       types.TimePeriod
	Capacity   int
	Status     BookingStatus
}

// IsActive returns true if the reservation still blocks its time slot
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled && r.Status != StatusAbandoned
}

// Period returns the reserved period rebased onto the reservation date
func (r *Reservation) Period() types.TimePeriod {
	p := r.Time.Clone()
	p.SetDate(r.Date)
	return p
}

// ReservationsFilter filter for fetching reservations
type ReservationsFilter struct {
	EmployeeID int64
	LocationID int64     // 0 = any location
	From       time.Time // inclusive
	To         time.Time // inclusive
	Statuses   []BookingStatus
}
