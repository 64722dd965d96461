package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Every statement is idempotent, so it is
// safe to run on each deploy.
func Migrate(ctx context.Context, db Querier) error {
	// no args: pgx sends it over the simple protocol, which allows several statements
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
