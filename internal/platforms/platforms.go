// Package platforms defines the common contract for external coding-profile
// fetchers. Each platform slot in an analysis envelope is exactly one of
// success, skipped, or failed.
package platforms

import (
	"context"
	"errors"
	"regexp"
)

// Slot statuses.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Sentinel errors fetchers return. The aggregator maps them to slot reasons.
var (
	ErrInvalidHandle       = errors.New("invalid handle")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Result is a tagged slot in the aggregate envelope. Exactly one of Profile
// (success) or Reason (skipped/failed) is meaningful.
type Result struct {
	Status    string `json:"status"`
	Profile   any    `json:"profile,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// Success wraps a fetched profile.
func Success(profile any, truncated bool) Result {
	return Result{Status: StatusSuccess, Profile: profile, Truncated: truncated}
}

// Skipped marks a slot that was never attempted.
func Skipped(reason string) Result {
	return Result{Status: StatusSkipped, Reason: reason}
}

// Failed marks an attempted fetch that did not produce a profile.
func Failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}

// Fetcher retrieves a public profile for a handle. The returned profile is a
// platform-specific struct; truncated reports whether pagination stopped
// early to preserve rate-limit budget.
type Fetcher interface {
	Platform() string
	Fetch(ctx context.Context, handle string) (profile any, truncated bool, err error)
}

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,38}$`)

// ValidHandle reports whether a handle is plausible for any supported
// platform: alphanumeric start, then alphanumerics, underscores, hyphens.
func ValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}
