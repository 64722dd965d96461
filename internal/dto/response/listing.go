package response

import (
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/pkg/utils"
)

type ListingResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PricePerNight string    `json:"price_per_night"`
	City          string    `json:"city"`
	Photos        []string  `json:"photos"`
	HostFirstName string    `json:"host_first_name"`
	HostLastName  string    `json:"host_last_name"`
	HostEmail     string    `json:"host_email"`
	MaxGuests     int       `json:"max_guests"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListingDetailResponse struct {
	ListingResponse
	TotalBookings int64 `json:"total_bookings"`
}

type AvailabilityResponse struct {
	ListingID string `json:"listing_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Available bool   `json:"available"`
	// only quoted while the dates are free
	TotalPrice *string `json:"total_price,omitempty"`
}

// Helper converters
func ListingToResponse(listing *entity.ListingView) ListingResponse {
	photos := listing.Photos
	if photos == nil {
		photos = []string{}
	}

	return ListingResponse{
		ID:            listing.ID.String(),
		Title:         listing.Title,
		Description:   listing.Description,
		PricePerNight: listing.PricePerNight.StringFixed(2),
		City:          listing.City,
		Photos:        photos,
		HostFirstName: listing.HostFirstName,
		HostLastName:  listing.HostLastName,
		HostEmail:     listing.HostEmail,
		MaxGuests:     listing.MaxGuests,
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}

func ListingsToResponse(listings []*entity.ListingView) []ListingResponse {
	resp := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, ListingToResponse(l))
	}
	return resp
}

func formatDate(t time.Time) string {
	return t.Format(utils.DateLayout)
}
