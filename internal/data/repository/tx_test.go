package repository

import (
	"context"
	"errors"
	"testing"

	"stay-booking/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var errConnLost = errors.New("conn lost")

// failingTx fails every statement; only the methods WithinTx and the
// repositories touch are implemented.
type failingTx struct {
	pgx.Tx
	rolledBack bool
	committed  bool
}

func (tx *failingTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errConnLost
}

func (tx *failingTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

func (tx *failingTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

type txDB struct {
	tx *failingTx
}

func (db *txDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, errConnLost }
func (db *txDB) QueryRow(context.Context, string, ...any) pgx.Row { return nil }
func (db *txDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errConnLost
}
func (db *txDB) Begin(context.Context) (pgx.Tx, error) { return db.tx, nil }
func (db *txDB) Ping(context.Context) error { return nil }
func (db *txDB) Close() {}

func TestWithinTx_RepositoriesLogUnderTheirOwnName(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	db := &txDB{tx: &failingTx{}}
	transactor := NewTransactor(db, zap.New(core))

	err := transactor.WithinTx(context.Background(), func(ctx context.Context, repo *Repository) error {
		return repo.User.Create(ctx, &entity.User{Email: "guest@example.com"})
	})

	require.ErrorIs(t, err, errConnLost)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)

	entries := logs.FilterMessage("Failed to create user").All()
	require.Len(t, entries, 1)
	var names []string
	for _, f := range entries[0].Context {
		if f.Key == "repository" {
			names = append(names, f.String)
		}
	}
	assert.Equal(t, []string{"user"}, names)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db := &txDB{tx: &failingTx{}}
	transactor := NewTransactor(db, zap.NewNop())

	err := transactor.WithinTx(context.Background(), func(context.Context, *Repository) error {
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}
