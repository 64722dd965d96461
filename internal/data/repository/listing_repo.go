package repository

import (
	"context"
	"errors"
	"fmt"

	"stay-booking/internal/data/entity"
	"stay-booking/internal/data/query"
	"stay-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error

	// Fetch returns listings matching cond, newest first. limit <= 0 means no limit.
	Fetch(ctx context.Context, cond query.Condition, limit int) ([]*entity.ListingView, error)
	// FindOne returns the first match or nil.
	FindOne(ctx context.Context, cond query.Condition) (*entity.ListingView, error)

	// FindByIDForUpdate locks the listing row until the surrounding
	// transaction ends. Returns nil when the listing does not exist.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindByTitle(ctx context.Context, title string) (*entity.Listing, error)
}

type listingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewListingRepository(db database.Querier, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

const listingColumns = `id, title, description, price_per_night, city, max_guests, photos, host_id, created_at, updated_at`

// listing joined with its host in one round trip
const listingViewQuery = `
	SELECT l.id, l.title, l.description, l.price_per_night, l.city, l.photos,
	       ` + userAlias + `.first_name, ` + userAlias + `.last_name, ` + userAlias + `.email,
	       l.max_guests, l.created_at, l.updated_at
	FROM listings ` + listingAlias + `
	JOIN users ` + userAlias + ` ON ` + userAlias + `.id = l.host_id
`

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	photos := listing.Photos
	if photos == nil {
		photos = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.PricePerNight,
		listing.City,
		listing.MaxGuests,
		photos,
		listing.HostID,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("title", listing.Title),
			zap.String("host_id", listing.HostID.String()),
		)
		return fmt.Errorf("create listing %q: %w", listing.Title, err)
	}

	return nil
}

func (r *listingRepository) Fetch(ctx context.Context, cond query.Condition, limit int) ([]*entity.ListingView, error) {
	where, args := query.Where(cond, 0)
	sql := listingViewQuery + " WHERE " + where + " ORDER BY l.id DESC"
	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to fetch listings",
			zap.Error(err),
			zap.String("where", where),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*entity.ListingView, 0)
	for rows.Next() {
		var l entity.ListingView
		err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.Description,
			&l.PricePerNight,
			&l.City,
			&l.Photos,
			&l.HostFirstName,
			&l.HostLastName,
			&l.HostEmail,
			&l.MaxGuests,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	r.log.Debug("Listings fetched", zap.Int("count", len(listings)))
	return listings, nil
}

func (r *listingRepository) FindOne(ctx context.Context, cond query.Condition) (*entity.ListingView, error) {
	listings, err := r.Fetch(ctx, cond, 1)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return listings[0], nil
}

func (r *listingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to lock listing",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("lock listing %s: %w", id.String(), err)
	}

	return listing, nil
}

func (r *listingRepository) FindByTitle(ctx context.Context, title string) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE title = $1 LIMIT 1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, title))
	if err != nil {
		r.log.Error("Failed to find listing by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find listing by title %q: %w", title, err)
	}

	return listing, nil
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var listing entity.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.PricePerNight,
		&listing.City,
		&listing.MaxGuests,
		&listing.Photos,
		&listing.HostID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
