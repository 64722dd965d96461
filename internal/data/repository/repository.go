package repository

import (
	"stay-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Listing ListingRepository
	Booking BookingRepository
	Session SessionRepository
	Tx      Transactor
}

func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	repo := newSQLRepository(db, log)
	repo.Session = NewSessionRepository(rdb, log)
	repo.Tx = NewTransactor(db, log)
	return repo
}

// newSQLRepository builds the Postgres-backed repositories on top of q, which is
// either the pool or an open transaction.
func newSQLRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(q, log),
		Listing: NewListingRepository(q, log),
		Booking: NewBookingRepository(q, log),
	}
}
