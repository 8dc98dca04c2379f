package portfolio

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no portfolio matches the lookup.
var ErrNotFound = errors.New("portfolio not found")

// Repo persists one portfolio per user, addressable by slug.
type Repo interface {
	Upsert(ctx context.Context, userID string, p Portfolio) error
	BySlug(ctx context.Context, slug string) (Portfolio, error)
	ByUser(ctx context.Context, userID string) (Portfolio, error)
}
