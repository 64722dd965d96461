package usecase

import (
	"stay-booking/internal/data/repository"
	"stay-booking/pkg/metrics"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Listing ListingService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	config *utils.Config,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, log),
		Listing: NewListingService(repo, log),
		Booking: NewBookingService(repo, config.Booking, m, log),
	}
}
