package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CustomerRef is the contact summary stored with every reserved slot.
type CustomerRef struct {
	BookedBy string // contact identifier (email or phone)
	Name     string
	Phone    string
}

// Booking is a confirmed reservation. It is persisted only implicitly, as
// the union of SlotOccupant entries sharing its ID; this struct is the
// in-memory reconstruction handed back to read callers.
type Booking struct {
	ID          string // externally visible order id
	Date        time.Time
	StartHour   int
	Hours       int
	ServiceType string
	Slots       []int // {StartHour, ..., StartHour+Hours-1}
	Customer    CustomerRef
	Status      BookingStatus
	CreatedAt   time.Time
}

// EndHour returns the first hour after the booking's last slot.
func (b *Booking) EndHour() int {
	return b.StartHour + b.Hours
}
