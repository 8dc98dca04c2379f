package history

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user has no saved analyses.
var ErrNotFound = errors.New("no history")

// Repo persists entries. List returns newest first.
type Repo interface {
	Insert(ctx context.Context, entry Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
	LatestByUser(ctx context.Context, userID string) (Entry, error)
}
