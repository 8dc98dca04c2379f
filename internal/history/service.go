package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devboard-backend/internal/analyze"
)

// Service saves and lists analysis history.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService builds a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save stores a completed envelope. Implements analyze.HistorySaver.
func (s *Service) Save(ctx context.Context, userID, fileName string, env analyze.Envelope) error {
	if userID == "" {
		return fmt.Errorf("user id required")
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return s.repo.Insert(ctx, Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		ATSScore:  env.Resume.ATSScore,
		WordCount: env.Resume.WordCount,
		Envelope:  payload,
		CreatedAt: s.now().UTC(),
	})
}

// List returns the user's saved analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// Latest returns the most recent saved analysis.
func (s *Service) Latest(ctx context.Context, userID string) (Entry, error) {
	return s.repo.LatestByUser(ctx, userID)
}

var _ analyze.HistorySaver = (*Service)(nil)
