// Package analyze orchestrates a full career analysis: resume parsing plus
// concurrent platform fetches, assembled into one envelope with per-platform
// partial-failure slots.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"devboard-backend/internal/extract"
	"devboard-backend/internal/platforms"
	"devboard-backend/internal/resume"
	"devboard-backend/internal/shared/cache"
	"devboard-backend/internal/shared/metrics"
	"devboard-backend/internal/shared/telemetry"
)

const (
	perFetchTimeout = 8 * time.Second
	profileCacheTTL = 10 * time.Minute
)

// Handles names the requested platform accounts. Empty means skip.
type Handles struct {
	GitHub   string
	LeetCode string
	CodeChef string
}

// PlatformSlots holds one tagged result per supported platform.
type PlatformSlots struct {
	GitHub   platforms.Result `json:"github"`
	LeetCode platforms.Result `json:"leetcode"`
	CodeChef platforms.Result `json:"codechef"`
}

// Envelope is the aggregate analysis response. A missing or unreadable
// resume is fatal; everything else degrades to a failed slot.
type Envelope struct {
	Resume      resume.Report `json:"resume"`
	Platforms   PlatformSlots `json:"platforms"`
	GeneratedAt time.Time     `json:"generatedAt"`
	DurationMs  int64         `json:"durationMs"`
}

// Service runs analyses.
type Service struct {
	parser      *resume.Parser
	fetchers    map[string]platforms.Fetcher
	cache       cache.Cache
	now         func() time.Time
	extractText func(ctx context.Context, data []byte) (string, error)
}

// NewService wires the aggregator. fetchers is keyed by platform name;
// missing platforms produce failed slots rather than panics.
func NewService(parser *resume.Parser, fetchers []platforms.Fetcher, c cache.Cache) *Service {
	byName := make(map[string]platforms.Fetcher, len(fetchers))
	for _, f := range fetchers {
		byName[f.Platform()] = f
	}
	return &Service{
		parser:      parser,
		fetchers:    byName,
		cache:       c,
		now:         time.Now,
		extractText: extract.PDFText,
	}
}

// AnalyzeAll parses the resume and fetches the requested platforms
// concurrently. Resume failure aborts the whole request; platform failures
// only mark their slot.
func (s *Service) AnalyzeAll(ctx context.Context, pdfData []byte, handles Handles) (Envelope, error) {
	metrics.IncAnalyzeRequest()
	start := s.now()

	text, err := s.extractText(ctx, pdfData)
	if err != nil {
		metrics.IncAnalyzeFailed()
		return Envelope{}, err
	}
	report, err := s.parser.Parse(ctx, text)
	if err != nil {
		metrics.IncAnalyzeFailed()
		return Envelope{}, fmt.Errorf("parse resume: %w", err)
	}

	// Handles from the resume itself fill in anything the caller omitted.
	if handles.GitHub == "" {
		handles.GitHub = report.Contact.GitHub
	}
	if handles.LeetCode == "" {
		handles.LeetCode = report.Contact.LeetCode
	}
	if handles.CodeChef == "" {
		handles.CodeChef = report.Contact.CodeChef
	}

	env := Envelope{Resume: report, GeneratedAt: start.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env.Platforms.GitHub = s.fetchSlot(gctx, "github", handles.GitHub)
		return nil
	})
	g.Go(func() error {
		env.Platforms.LeetCode = s.fetchSlot(gctx, "leetcode", handles.LeetCode)
		return nil
	})
	g.Go(func() error {
		env.Platforms.CodeChef = s.fetchSlot(gctx, "codechef", handles.CodeChef)
		return nil
	})
	_ = g.Wait()

	env.DurationMs = s.now().Sub(start).Milliseconds()
	metrics.ObserveAnalyzeDurationMs(float64(env.DurationMs))
	return env, nil
}

// FetchPlatform serves the single-platform endpoints. The slot contract is
// identical to the aggregate one.
func (s *Service) FetchPlatform(ctx context.Context, platform, handle string) platforms.Result {
	return s.fetchSlot(ctx, platform, handle)
}

// fetchSlot resolves one slot: skip without a handle, consult the cache,
// then fetch with a per-call timeout. Only non-truncated successes are
// cached.
func (s *Service) fetchSlot(ctx context.Context, platform, handle string) platforms.Result {
	result := s.resolveSlot(ctx, platform, handle)
	metrics.IncFetchOutcome(platform, result.Status)
	return result
}

func (s *Service) resolveSlot(ctx context.Context, platform, handle string) platforms.Result {
	if handle == "" {
		return platforms.Skipped("no handle provided")
	}

	fetcher, ok := s.fetchers[platform]
	if !ok {
		return platforms.Failed("platform not supported")
	}

	cacheKey := "profile:" + platform + ":" + handle
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var profile json.RawMessage
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return platforms.Success(profile, false)
			}
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, perFetchTimeout)
	defer cancel()

	profile, truncated, err := fetcher.Fetch(fetchCtx, handle)
	if err != nil {
		return platforms.Failed(slotReason(platform, err))
	}

	if s.cache != nil && !truncated {
		if payload, err := json.Marshal(profile); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), profileCacheTTL); err != nil {
				telemetry.Error("analyze.cache_set", map[string]any{"platform": platform, "error": err.Error()})
			}
		}
	}
	return platforms.Success(profile, truncated)
}

func slotReason(platform string, err error) string {
	switch {
	case errors.Is(err, platforms.ErrInvalidHandle):
		return "invalid handle"
	case errors.Is(err, platforms.ErrProfileNotFound):
		return "profile not found"
	case errors.Is(err, platforms.ErrRateLimited):
		return "rate limited by " + platform
	case errors.Is(err, platforms.ErrUpstreamUnavailable):
		return platform + " unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout contacting " + platform
	default:
		return "fetch failed"
	}
}
