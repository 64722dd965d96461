package usecase

import (
	"stay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Nights is the number of nights charged for stay.
func Nights(stay entity.StayRange) int {
	return stay.Nights()
}

// TotalPrice charges rate for every night of stay, rounded to cents.
func TotalPrice(rate decimal.Decimal, stay entity.StayRange) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(Nights(stay)))).Round(2)
}
