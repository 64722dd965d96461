package request

import "github.com/shopspring/decimal"

type ListingFilters struct {
	City     *string          `json:"city,omitempty" validate:"omitempty,max=100"`
	CheckIn  *string          `json:"check_in,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut *string          `json:"check_out,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`
}

type FetchListingsRequest struct {
	Filters ListingFilters `json:"filters"`
	Count   *int           `json:"count,omitempty" validate:"omitempty,min=1"`
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}
