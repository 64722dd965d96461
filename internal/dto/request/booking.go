package request

type CreateBookingRequest struct {
	ListingID      string `json:"listing_id" validate:"required,uuid"`
	CheckIn        string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut       string `json:"check_out" validate:"required,datetime=2006-01-02"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
}

// BookingFilters narrows the caller's own bookings. start_date and end_date
// bound the creation day, both inclusive.
type BookingFilters struct {
	ListingID *string `json:"listing_id,omitempty" validate:"omitempty,uuid"`
	CheckIn   *string `json:"check_in,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut  *string `json:"check_out,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Count     *int    `json:"count,omitempty" validate:"omitempty,min=1"`
}

type FetchBookingsRequest struct {
	Filters BookingFilters `json:"filters"`
}
