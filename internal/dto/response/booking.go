package response

import (
	"time"

	"stay-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	ListingID      string               `json:"listing_id"`
	ListingTitle   string               `json:"listing_title"`
	ListingCity    string               `json:"listing_city"`
	UserID         string               `json:"user_id"`
	UserEmail      string               `json:"user_email"`
	CheckIn        string               `json:"check_in"`
	CheckOut       string               `json:"check_out"`
	NumberOfGuests int                  `json:"number_of_guests"`
	TotalPrice     *string              `json:"total_price"`
	Status         entity.BookingStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.BookingView) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		ListingID:      booking.ListingID.String(),
		ListingTitle:   booking.ListingTitle,
		ListingCity:    booking.ListingCity,
		UserID:         booking.UserID.String(),
		UserEmail:      booking.UserEmail,
		CheckIn:        formatDate(booking.CheckIn),
		CheckOut:       formatDate(booking.CheckOut),
		NumberOfGuests: booking.NumberOfGuests,
		Status:         booking.Status,
		CreatedAt:      booking.CreatedAt,
	}

	if booking.TotalPrice.Valid {
		total := booking.TotalPrice.Decimal.StringFixed(2)
		resp.TotalPrice = &total
	}

	return resp
}

func BookingsToResponse(bookings []*entity.BookingView) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, BookingToResponse(b))
	}
	return resp
}
