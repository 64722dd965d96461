package adaptor

import (
	"stay-booking/internal/usecase"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Listing *ListingHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, cookies utils.CookieConfig, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, cookies, log),
		User:    NewUserHandler(service.User, log),
		Listing: NewListingHandler(service.Listing, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
