package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Listing struct {
	Base
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	City          string          `db:"city"`
	MaxGuests     int             `db:"max_guests"`
	Photos        []string        `db:"photos"`
	HostID        uuid.UUID       `db:"host_id"`
}

// ListingView is the read projection of a listing joined with its host.
type ListingView struct {
	ID            uuid.UUID
	Title         string
	Description   string
	PricePerNight decimal.Decimal
	City          string
	Photos        []string
	HostFirstName string
	HostLastName  string
	HostEmail     string
	MaxGuests     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
