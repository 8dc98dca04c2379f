package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo persists entries in Postgres.
type PGRepo struct {
	db *sql.DB
}

// NewPGRepo builds a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

func (r *PGRepo) Insert(ctx context.Context, entry Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_history (id, user_id, file_name, ats_score, word_count, envelope, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.UserID, entry.FileName, entry.ATSScore, entry.WordCount, []byte(entry.Envelope), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, file_name, ats_score, word_count, envelope, created_at
		FROM analysis_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var envelope []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.FileName, &entry.ATSScore,
			&entry.WordCount, &envelope, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entry.Envelope = envelope
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, file_name, ats_score, word_count, envelope, created_at
		FROM analysis_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, userID)

	var entry Entry
	var envelope []byte
	err := row.Scan(&entry.ID, &entry.UserID, &entry.FileName, &entry.ATSScore,
		&entry.WordCount, &envelope, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("scan history: %w", err)
	}
	entry.Envelope = envelope
	return entry, nil
}
