package entity

import (
	"errors"
	"time"
)

var ErrInvalidStay = errors.New("check-out date must be after check-in date")

// StayRange is the half-open date interval [CheckIn, CheckOut). Both ends are
// calendar dates at UTC midnight.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	stay := StayRange{CheckIn: truncateDate(checkIn), CheckOut: truncateDate(checkOut)}
	if !stay.CheckOut.After(stay.CheckIn) {
		return StayRange{}, ErrInvalidStay
	}
	return stay, nil
}

const secondsPerDay = 24 * 60 * 60

// Nights is the number of whole days between check-in and check-out. Both ends
// are UTC midnights, so the difference in Unix seconds is an exact multiple of
// a day.
func (s StayRange) Nights() int {
	return int((s.CheckOut.Unix() - s.CheckIn.Unix()) / secondsPerDay)
}

// Overlaps reports whether two stays share at least one night. A stay that
// checks out on the day another checks in does not overlap it.
func (s StayRange) Overlaps(other StayRange) bool {
	return other.CheckIn.Before(s.CheckOut) && other.CheckOut.After(s.CheckIn)
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
