package repository

import (
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Table aliases used by the listing and booking read queries. Conditions passed
// to Fetch/FindOne must refer to columns through them.
const (
	listingAlias = "l"
	bookingAlias = "b"
	userAlias    = "u"
)

// ListingFilter holds the optional listing search parameters. Nil fields add no
// constraint.
type ListingFilter struct {
	City     *string
	CheckIn  *time.Time
	CheckOut *time.Time
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// BookingFilter holds the optional booking lookup parameters. StartDate and
// EndDate bound created_at, both days inclusive.
type BookingFilter struct {
	ListingID *uuid.UUID
	UserID    *uuid.UUID
	CheckIn   *time.Time
	CheckOut  *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// ActiveOverlap matches bookings (under alias) that hold any night of stay:
// active status and existing.check_in < stay.check_out and
// existing.check_out > stay.check_in. It is the only definition of a date
// conflict; both the single-listing availability check and listing search use it.
func ActiveOverlap(alias string, stay entity.StayRange) query.Condition {
	statuses := make([]string, len(entity.ActiveBookingStatuses))
	for i, s := range entity.ActiveBookingStatuses {
		statuses[i] = string(s)
	}

	return query.And(
		query.In(alias+".status", statuses...),
		query.Lt(alias+".check_in", stay.CheckOut),
		query.Gt(alias+".check_out", stay.CheckIn),
	)
}

// AvailableFor matches listings that have no active booking overlapping stay.
func AvailableFor(stay entity.StayRange) query.Condition {
	return query.Not(query.Exists("bookings "+bookingAlias, query.And(
		query.ColumnEq(bookingAlias+".listing_id", listingAlias+".id"),
		ActiveOverlap(bookingAlias, stay),
	)))
}

// ListingCondition turns a ListingFilter into one condition; present fields
// are ANDed together.
func ListingCondition(f ListingFilter) query.Condition {
	cond := query.True()

	if f.City != nil {
		cond = query.And(cond, query.IEq(listingAlias+".city", *f.City))
	}
	if f.CheckIn != nil && f.CheckOut != nil {
		cond = query.And(cond, AvailableFor(entity.StayRange{CheckIn: *f.CheckIn, CheckOut: *f.CheckOut}))
	}
	if f.MinPrice != nil {
		cond = query.And(cond, query.Gte(listingAlias+".price_per_night", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		cond = query.And(cond, query.Lte(listingAlias+".price_per_night", *f.MaxPrice))
	}

	return cond
}

// BookingCondition turns a BookingFilter into one condition; present fields
// are ANDed together.
func BookingCondition(f BookingFilter) query.Condition {
	cond := query.True()

	if f.ListingID != nil {
		cond = query.And(cond, query.Eq(bookingAlias+".listing_id", *f.ListingID))
	}
	if f.UserID != nil {
		cond = query.And(cond, query.Eq(bookingAlias+".user_id", *f.UserID))
	}
	if f.CheckIn != nil {
		cond = query.And(cond, query.Eq(bookingAlias+".check_in", *f.CheckIn))
	}
	if f.CheckOut != nil {
		cond = query.And(cond, query.Eq(bookingAlias+".check_out", *f.CheckOut))
	}
	if f.StartDate != nil {
		cond = query.And(cond, query.Gte(bookingAlias+".created_at", *f.StartDate))
	}
	if f.EndDate != nil {
		cond = query.And(cond, query.Lt(bookingAlias+".created_at", f.EndDate.AddDate(0, 0, 1)))
	}

	return cond
}

func ListingByID(id uuid.UUID) query.Condition {
	return query.Eq(listingAlias+".id", id)
}

func BookingByID(id uuid.UUID) query.Condition {
	return query.Eq(bookingAlias+".id", id)
}
