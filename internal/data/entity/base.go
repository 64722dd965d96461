package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase stamps a fresh time-ordered id, so ordering by id follows insertion order.
func NewBase(now time.Time) (Base, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Base{}, err
	}
	return Base{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}
