package repository

import (
	"context"
	"fmt"

	"stay-booking/pkg/database"

	"go.uber.org/zap"
)

// Transactor runs a unit of work against repositories that share one
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise. The Repository handed to fn only carries the SQL repositories.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo *Repository) error) error
}

type pgxTransactor struct {
	db database.PgxIface
	// base is handed to the repositories of each transaction; they add their
	// own repository field.
	base *zap.Logger
	log  *zap.Logger
}

func NewTransactor(db database.PgxIface, log *zap.Logger) Transactor {
	return &pgxTransactor{
		db:   db,
		base: log,
		log:  log.With(zap.String("repository", "tx")),
	}
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repo *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, newSQLRepository(tx, t.base)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			t.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
