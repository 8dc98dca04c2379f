package history

import (
	"context"
	"sync"
)

// MemoryRepo is the in-process store used when DATABASE_URL is unset.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewMemoryRepo builds an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string][]Entry)}
}

func (r *MemoryRepo) Insert(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Prepend so iteration order is newest first.
	r.entries[entry.UserID] = append([]Entry{entry}, r.entries[entry.UserID]...)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.entries[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Entry, error) {
	entries, err := r.ListByUser(ctx, userID, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}
