package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devboard-backend/internal/analyze"
	"devboard-backend/internal/history"
	"devboard-backend/internal/platforms"
	codechefplatform "devboard-backend/internal/platforms/codechef"
	githubplatform "devboard-backend/internal/platforms/github"
	leetcodeplatform "devboard-backend/internal/platforms/leetcode"
	"devboard-backend/internal/shared/util"
)

const (
	maxSkills   = 15
	maxProjects = 6
)

// ErrNoHistory is returned when the user has never saved an analysis.
var ErrNoHistory = errors.New("no saved analysis to build from")

// HistorySource provides the latest saved envelope.
type HistorySource interface {
	Latest(ctx context.Context, userID string) (history.Entry, error)
}

// Service generates and serves portfolios.
type Service struct {
	repo    Repo
	history HistorySource
	now     func() time.Time
}

// NewService builds a Service.
func NewService(repo Repo, historySource HistorySource) *Service {
	return &Service{repo: repo, history: historySource, now: time.Now}
}

// Generate builds a portfolio from the user's latest saved analysis and
// stores it. Regenerating replaces the previous portfolio.
func (s *Service) Generate(ctx context.Context, userID string) (Portfolio, error) {
	entry, err := s.history.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return Portfolio{}, ErrNoHistory
		}
		return Portfolio{}, err
	}

	var env analyze.Envelope
	if err := json.Unmarshal(entry.Envelope, &env); err != nil {
		return Portfolio{}, fmt.Errorf("decode envelope: %w", err)
	}

	p := buildPortfolio(env, userID, s.now().UTC())
	if err := s.repo.Upsert(ctx, userID, p); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

// BySlug serves the public view.
func (s *Service) BySlug(ctx context.Context, slug string) (Portfolio, error) {
	return s.repo.BySlug(ctx, slug)
}

// ByUser serves the owner's view.
func (s *Service) ByUser(ctx context.Context, userID string) (Portfolio, error) {
	return s.repo.ByUser(ctx, userID)
}

func buildPortfolio(env analyze.Envelope, userID string, now time.Time) Portfolio {
	name := env.Resume.Contact.Name
	if name == "" {
		name = "Developer"
	}

	skills := env.Resume.Skills.Technical
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}

	p := Portfolio{
		Slug:      slugFor(name, userID),
		Name:      name,
		Headline:  env.Resume.Summary,
		Skills:    skills,
		Languages: env.Resume.Languages,
		Stats:     Stats{ATSScore: env.Resume.ATSScore},
		UpdatedAt: now,
	}

	if gh, ok := decodeSlot[githubplatform.Profile](env.Platforms.GitHub); ok {
		p.Stats.GitHubStars = gh.TotalStars
		p.Stats.GitHubFollowers = gh.Followers
		for _, repo := range gh.TopRepos {
			if len(p.Projects) == maxProjects {
				break
			}
			p.Projects = append(p.Projects, Project{
				Name:        repo.Name,
				Description: repo.Description,
				Language:    repo.Language,
				Stars:       repo.Stars,
			})
		}
	}
	if lc, ok := decodeSlot[leetcodeplatform.Profile](env.Platforms.LeetCode); ok {
		p.Stats.ProblemsSolved += lc.TotalSolved
	}
	if cc, ok := decodeSlot[codechefplatform.Profile](env.Platforms.CodeChef); ok {
		p.Stats.ProblemsSolved += cc.ProblemsSolved
		p.Stats.ContestRating = cc.Rating
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	return p
}

// decodeSlot re-types a successful slot's profile, which arrives as generic
// JSON after an envelope round trip.
func decodeSlot[T any](slot platforms.Result) (T, bool) {
	var out T
	if slot.Status != platforms.StatusSuccess || slot.Profile == nil {
		return out, false
	}
	raw, err := json.Marshal(slot.Profile)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

// slugFor derives a stable, unique public slug. The user-id suffix keeps
// same-name users from colliding.
func slugFor(name, userID string) string {
	suffix := util.Slugify(userID)
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	slug := util.Slugify(name, suffix)
	if slug == "" {
		slug = "dev-" + suffix
	}
	return slug
}
