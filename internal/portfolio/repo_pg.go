package portfolio

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo persists portfolios in Postgres as JSONB documents.
type PGRepo struct {
	db *sql.DB
}

// NewPGRepo builds a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

func (r *PGRepo) Upsert(ctx context.Context, userID string, p Portfolio) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal portfolio: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO portfolios (user_id, slug, portfolio, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET slug = EXCLUDED.slug, portfolio = EXCLUDED.portfolio, updated_at = EXCLUDED.updated_at`,
		userID, p.Slug, payload, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert portfolio: %w", err)
	}
	return nil
}

func (r *PGRepo) BySlug(ctx context.Context, slug string) (Portfolio, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT portfolio, updated_at FROM portfolios WHERE slug = $1`, slug))
}

func (r *PGRepo) ByUser(ctx context.Context, userID string) (Portfolio, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT portfolio, updated_at FROM portfolios WHERE user_id = $1`, userID))
}

func (r *PGRepo) scanOne(row *sql.Row) (Portfolio, error) {
	var payload []byte
	var updated time.Time
	if err := row.Scan(&payload, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Portfolio{}, ErrNotFound
		}
		return Portfolio{}, fmt.Errorf("scan portfolio: %w", err)
	}
	var p Portfolio
	if err := json.Unmarshal(payload, &p); err != nil {
		return Portfolio{}, fmt.Errorf("decode portfolio: %w", err)
	}
	p.UpdatedAt = updated
	return p, nil
}
