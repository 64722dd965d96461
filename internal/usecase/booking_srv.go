package usecase

import (
	"context"
	"errors"
	"time"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/query"
	"stay-booking/internal/data/repository"
	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/pkg/metrics"
	"stay-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking books listing dates for userID. Rejections come back as
	// *Error with KindValidation, KindNotFound, KindConflict or KindPersistence.
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.FetchBookingsRequest) ([]response.BookingResponse, error)
	// GetBooking returns one of userID's bookings. Another user's booking is
	// reported as not found.
	GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	config  utils.BookingConfig
	metrics *metrics.Metrics
	log     *zap.Logger
	today   func() time.Time
}

func NewBookingService(repo *repository.Repository, config utils.BookingConfig, m *metrics.Metrics, log *zap.Logger) BookingService {
	return newBookingService(repo, config, m, log)
}

func newBookingService(repo *repository.Repository, config utils.BookingConfig, m *metrics.Metrics, log *zap.Logger) *bookingService {
	return &bookingService{
		repo:    repo,
		config:  config,
		metrics: m,
		log:     log.With(zap.String("service", "booking")),
		today:   utils.Today,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		s.metrics.ObserveBooking(metrics.OutcomeValidation)
		return nil, validationError(errs)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		s.metrics.ObserveBooking(metrics.OutcomeValidation)
		return nil, fieldError("listing_id", "Must be a valid UUID")
	}

	stay, verr := parseStay(req.CheckIn, req.CheckOut)
	if verr != nil {
		s.metrics.ObserveBooking(metrics.OutcomeValidation)
		return nil, verr
	}
	if stay.CheckIn.Before(s.today()) {
		s.metrics.ObserveBooking(metrics.OutcomeValidation)
		return nil, fieldError("check_in", "Check-in date cannot be in the past")
	}

	return s.create(ctx, userID, listingID, stay, req.NumberOfGuests)
}

// create runs the lookup, availability check, pricing and insert in one
// transaction that holds the listing row lock, so concurrent creators for the
// same listing are serialised.
func (s *bookingService) create(ctx context.Context, userID, listingID uuid.UUID, stay entity.StayRange, guests int) (*response.BookingResponse, error) {
	var created *entity.BookingView

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		listing, err := tx.Listing.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return persistenceError(err)
		}
		if listing == nil {
			return notFoundError(MsgListingNotFound)
		}

		available, err := tx.Booking.IsAvailable(ctx, listingID, stay)
		if err != nil {
			return persistenceError(err)
		}
		if !available {
			return conflictError(MsgListingUnavailable, nil)
		}

		user, err := tx.User.FindByID(ctx, userID)
		if err != nil {
			return persistenceError(err)
		}
		if user == nil {
			return unauthorizedError("User not found")
		}

		base, err := entity.NewBase(time.Now().UTC())
		if err != nil {
			return internalError(err)
		}

		booking := &entity.Booking{
			Base:           base,
			ListingID:      listing.ID,
			UserID:         user.ID,
			Status:         entity.BookingStatusPending,
			Stay:           stay,
			NumberOfGuests: guests,
			TotalPrice:     decimal.NewNullDecimal(TotalPrice(listing.PricePerNight, stay)),
		}

		if err := tx.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrBookingOverlap) {
				return conflictError(MsgListingUnavailable, err)
			}
			return persistenceError(err)
		}

		created = &entity.BookingView{
			ID:             booking.ID,
			ListingID:      listing.ID,
			ListingTitle:   listing.Title,
			ListingCity:    listing.City,
			UserID:         user.ID,
			UserEmail:      user.Email,
			Status:         booking.Status,
			CheckIn:        stay.CheckIn,
			CheckOut:       stay.CheckOut,
			NumberOfGuests: guests,
			TotalPrice:     booking.TotalPrice,
			CreatedAt:      booking.CreatedAt,
		}
		return nil
	})

	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			// begin/commit failures
			svcErr = persistenceError(err)
		}
		s.metrics.ObserveBooking(bookingOutcome(svcErr.Kind))
		s.log.Warn("Booking rejected",
			zap.String("listing_id", listingID.String()),
			zap.String("user_id", userID.String()),
			zap.String("kind", svcErr.Kind.String()),
			zap.Error(err),
		)
		return nil, svcErr
	}

	s.metrics.ObserveBooking(metrics.OutcomeCreated)
	s.log.Info("Booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("listing_id", listingID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("nights", Nights(stay)),
		zap.String("total_price", created.TotalPrice.Decimal.StringFixed(2)),
	)

	resp := response.BookingToResponse(created)
	return &resp, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.FetchBookingsRequest) ([]response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := repository.BookingFilter{UserID: &userID}
	f := req.Filters

	if f.ListingID != nil {
		id, err := uuid.Parse(*f.ListingID)
		if err != nil {
			return nil, fieldError("listing_id", "Must be a valid UUID")
		}
		filter.ListingID = &id
	}

	dates := []struct {
		field string
		raw   *string
		dst   **time.Time
	}{
		{"check_in", f.CheckIn, &filter.CheckIn},
		{"check_out", f.CheckOut, &filter.CheckOut},
		{"start_date", f.StartDate, &filter.StartDate},
		{"end_date", f.EndDate, &filter.EndDate},
	}
	for _, d := range dates {
		if d.raw == nil {
			continue
		}
		t, err := utils.ParseDate(*d.raw)
		if err != nil {
			return nil, fieldError(d.field, "Must be a date in YYYY-MM-DD format")
		}
		*d.dst = &t
	}

	limit := s.config.FetchLimit
	if f.Count != nil {
		limit = *f.Count
	}

	bookings, err := s.repo.Booking.Fetch(ctx, repository.BookingCondition(filter), limit)
	if err != nil {
		return nil, internalError(err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	cond := query.And(repository.BookingByID(id), repository.BookingCondition(repository.BookingFilter{UserID: &userID}))
	booking, err := s.repo.Booking.FindOne(ctx, cond)
	if err != nil {
		return nil, internalError(err)
	}
	if booking == nil {
		return nil, notFoundError(MsgBookingNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func bookingOutcome(kind ErrorKind) string {
	switch kind {
	case KindValidation:
		return metrics.OutcomeValidation
	case KindNotFound:
		return metrics.OutcomeNotFound
	case KindConflict:
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
