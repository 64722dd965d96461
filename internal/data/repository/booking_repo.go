package repository

import (
	"context"
	"errors"
	"fmt"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/query"
	"stay-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// PostgreSQL error codes the repositories translate.
const (
	uniqueViolation    = "23505"
	exclusionViolation = "23P01"
)

// ErrBookingOverlap is returned by Create when the bookings_no_active_overlap
// constraint rejects the row.
var ErrBookingOverlap = errors.New("booking overlaps an active booking")

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error

	// IsAvailable reports whether no active booking of the listing overlaps stay.
	IsAvailable(ctx context.Context, listingID uuid.UUID, stay entity.StayRange) (bool, error)

	// Fetch returns bookings matching cond, newest first, at most limit rows.
	Fetch(ctx context.Context, cond query.Condition, limit int) ([]*entity.BookingView, error)
	FindOne(ctx context.Context, cond query.Condition) (*entity.BookingView, error)
	CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingViewQuery = `
	SELECT b.id, l.id, l.title, l.city, u.id, u.email, b.status,
	       b.check_in, b.check_out, b.number_of_guests, b.total_price, b.created_at
	FROM bookings ` + bookingAlias + `
	JOIN listings ` + listingAlias + ` ON l.id = b.listing_id
	JOIN users ` + userAlias + ` ON u.id = b.user_id
`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, listing_id, user_id, status, check_in, check_out,
		                      number_of_guests, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.UserID,
		string(booking.Status),
		booking.Stay.CheckIn,
		booking.Stay.CheckOut,
		booking.NumberOfGuests,
		booking.TotalPrice,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		r.log.Warn("Booking rejected by overlap constraint",
			zap.String("listing_id", booking.ListingID.String()),
			zap.Time("check_in", booking.Stay.CheckIn),
			zap.Time("check_out", booking.Stay.CheckOut),
		)
		return ErrBookingOverlap
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("listing_id", booking.ListingID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking for listing %s: %w", booking.ListingID.String(), err)
	}

	return nil
}

func (r *bookingRepository) IsAvailable(ctx context.Context, listingID uuid.UUID, stay entity.StayRange) (bool, error) {
	conflict := query.Exists("bookings "+bookingAlias, query.And(
		query.Eq(bookingAlias+".listing_id", listingID),
		ActiveOverlap(bookingAlias, stay),
	))
	where, args := query.Where(query.Not(conflict), 0)

	var available bool
	if err := r.db.QueryRow(ctx, "SELECT "+where, args...).Scan(&available); err != nil {
		r.log.Error("Failed to check availability",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return false, fmt.Errorf("check availability of listing %s: %w", listingID.String(), err)
	}

	return available, nil
}

func (r *bookingRepository) Fetch(ctx context.Context, cond query.Condition, limit int) ([]*entity.BookingView, error) {
	where, args := query.Where(cond, 0)
	sql := bookingViewQuery + " WHERE " + where + " ORDER BY b.created_at DESC, b.id DESC"
	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to fetch bookings",
			zap.Error(err),
			zap.String("where", where),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.BookingView, 0)
	for rows.Next() {
		var b entity.BookingView
		var status string
		err := rows.Scan(
			&b.ID,
			&b.ListingID,
			&b.ListingTitle,
			&b.ListingCity,
			&b.UserID,
			&b.UserEmail,
			&status,
			&b.CheckIn,
			&b.CheckOut,
			&b.NumberOfGuests,
			&b.TotalPrice,
			&b.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		b.Status = entity.BookingStatus(status)
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindOne(ctx context.Context, cond query.Condition) (*entity.BookingView, error) {
	bookings, err := r.Fetch(ctx, cond, 1)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (r *bookingRepository) CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE listing_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, listingID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by listing",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return 0, fmt.Errorf("count bookings of listing %s: %w", listingID.String(), err)
	}

	return count, nil
}
