package portfolio

import (
	"context"
	"sync"
)

// MemoryRepo is the in-process store used when DATABASE_URL is unset.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Portfolio
	bySlug map[string]string
}

// NewMemoryRepo builds an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser: make(map[string]Portfolio),
		bySlug: make(map[string]string),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, userID string, p Portfolio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byUser[userID]; ok && old.Slug != p.Slug {
		delete(r.bySlug, old.Slug)
	}
	r.byUser[userID] = p
	r.bySlug[p.Slug] = userID
	return nil
}

func (r *MemoryRepo) BySlug(ctx context.Context, slug string) (Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return Portfolio{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.bySlug[slug]
	if !ok {
		return Portfolio{}, ErrNotFound
	}
	return r.byUser[userID], nil
}

func (r *MemoryRepo) ByUser(ctx context.Context, userID string) (Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return Portfolio{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUser[userID]
	if !ok {
		return Portfolio{}, ErrNotFound
	}
	return p, nil
}
