package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that hold a listing's dates.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// IsActive reports whether a booking in this status blocks availability.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	Base
	ListingID      uuid.UUID           `db:"listing_id"`
	UserID         uuid.UUID           `db:"user_id"`
	Status         BookingStatus       `db:"status"`
	Stay           StayRange           `db:"-"`
	NumberOfGuests int                 `db:"number_of_guests"`
	TotalPrice     decimal.NullDecimal `db:"total_price"`
}

// BookingView is the read projection of a booking joined with its listing and guest.
type BookingView struct {
	ID             uuid.UUID
	ListingID      uuid.UUID
	ListingTitle   string
	ListingCity    string
	UserID         uuid.UUID
	UserEmail      string
	Status         BookingStatus
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	TotalPrice     decimal.NullDecimal
	CreatedAt      time.Time
}
