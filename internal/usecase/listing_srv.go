package usecase

import (
	"context"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/repository"
	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ListingService interface {
	FetchListings(ctx context.Context, req *request.FetchListingsRequest) ([]response.ListingResponse, error)
	GetListingDetail(ctx context.Context, listingID string) (*response.ListingDetailResponse, error)
	CheckAvailability(ctx context.Context, listingID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	// Seed creates the host and every listing whose title is not taken yet.
	// It returns how many listings were created.
	Seed(ctx context.Context, data SeedData) (int, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) FetchListings(ctx context.Context, req *request.FetchListingsRequest) ([]response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Fetch listings validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	filter, verr := listingFilterFrom(req.Filters)
	if verr != nil {
		return nil, verr
	}

	limit := 0
	if req.Count != nil {
		limit = *req.Count
	}

	listings, err := s.repo.Listing.Fetch(ctx, repository.ListingCondition(filter), limit)
	if err != nil {
		return nil, internalError(err)
	}

	return response.ListingsToResponse(listings), nil
}

func (s *listingService) GetListingDetail(ctx context.Context, listingID string) (*response.ListingDetailResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	listing, err := s.repo.Listing.FindOne(ctx, repository.ListingByID(id))
	if err != nil {
		return nil, internalError(err)
	}
	if listing == nil {
		return nil, notFoundError(MsgListingNotFound)
	}

	total, err := s.repo.Booking.CountByListing(ctx, id)
	if err != nil {
		return nil, internalError(err)
	}

	return &response.ListingDetailResponse{
		ListingResponse: response.ListingToResponse(listing),
		TotalBookings:   total,
	}, nil
}

func (s *listingService) CheckAvailability(ctx context.Context, listingID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	stay, verr := parseStay(req.CheckIn, req.CheckOut)
	if verr != nil {
		return nil, verr
	}

	listing, err := s.repo.Listing.FindOne(ctx, repository.ListingByID(id))
	if err != nil {
		return nil, internalError(err)
	}
	if listing == nil {
		return nil, notFoundError(MsgListingNotFound)
	}

	available, err := s.repo.Booking.IsAvailable(ctx, id, stay)
	if err != nil {
		return nil, internalError(err)
	}

	resp := &response.AvailabilityResponse{
		ListingID: id.String(),
		CheckIn:   stay.CheckIn.Format(utils.DateLayout),
		CheckOut:  stay.CheckOut.Format(utils.DateLayout),
		Nights:    Nights(stay),
		Available: available,
	}
	if available {
		total := TotalPrice(listing.PricePerNight, stay).StringFixed(2)
		resp.TotalPrice = &total
	}

	return resp, nil
}

func (s *listingService) Seed(ctx context.Context, data SeedData) (int, error) {
	host, err := s.repo.User.FindByEmail(ctx, data.Host.Email)
	if err != nil {
		return 0, err
	}

	if host == nil {
		hash, err := utils.HashPassword(data.Host.Password)
		if err != nil {
			return 0, err
		}
		base, err := entity.NewBase(time.Now().UTC())
		if err != nil {
			return 0, err
		}
		host = &entity.User{
			Base:         base,
			Email:        data.Host.Email,
			PasswordHash: hash,
			FirstName:    data.Host.FirstName,
			LastName:     data.Host.LastName,
			IsActive:     true,
		}
		if err := s.repo.User.Create(ctx, host); err != nil {
			return 0, err
		}
		s.log.Info("Created host user", zap.String("email", host.Email))
	} else {
		s.log.Info("Using existing host user", zap.String("email", host.Email))
	}

	created := 0
	for _, seed := range data.Listings {
		existing, err := s.repo.Listing.FindByTitle(ctx, seed.Title)
		if err != nil {
			return created, err
		}
		if existing != nil {
			s.log.Info("Listing already exists", zap.String("title", seed.Title))
			continue
		}

		base, err := entity.NewBase(time.Now().UTC())
		if err != nil {
			return created, err
		}
		listing := &entity.Listing{
			Base:          base,
			Title:         seed.Title,
			Description:   seed.Description,
			PricePerNight: decimal.RequireFromString(seed.PricePerNight),
			City:          seed.City,
			MaxGuests:     seed.MaxGuests,
			Photos:        seed.Photos,
			HostID:        host.ID,
		}
		if err := s.repo.Listing.Create(ctx, listing); err != nil {
			return created, err
		}

		created++
		s.log.Info("Created listing", zap.String("title", listing.Title), zap.String("city", listing.City))
	}

	return created, nil
}

// listingFilterFrom parses the optional filters. The availability constraint
// only applies when both dates are given.
func listingFilterFrom(f request.ListingFilters) (repository.ListingFilter, *Error) {
	filter := repository.ListingFilter{
		City:     f.City,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return filter, fieldError("min_price", "Must be greater than or equal to 0")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return filter, fieldError("max_price", "Must be greater than or equal to 0")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MaxPrice.LessThan(*f.MinPrice) {
		return filter, fieldError("max_price", "Must be greater than or equal to min_price")
	}

	if f.CheckIn != nil && f.CheckOut != nil {
		stay, verr := parseStay(*f.CheckIn, *f.CheckOut)
		if verr != nil {
			return filter, verr
		}
		filter.CheckIn = &stay.CheckIn
		filter.CheckOut = &stay.CheckOut
	}

	return filter, nil
}

// parseStay expects dates already validated as YYYY-MM-DD.
func parseStay(checkIn, checkOut string) (entity.StayRange, *Error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return entity.StayRange{}, fieldError("check_in", "Must be a date in YYYY-MM-DD format")
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return entity.StayRange{}, fieldError("check_out", "Must be a date in YYYY-MM-DD format")
	}

	stay, err := entity.NewStayRange(in, out)
	if err != nil {
		return entity.StayRange{}, fieldError("check_out", "Check-out date must be after check-in date")
	}
	return stay, nil
}
