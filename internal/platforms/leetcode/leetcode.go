// Package leetcode fetches public LeetCode profiles through the unofficial
// GraphQL endpoint.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devboard-backend/internal/platforms"
)

const defaultBaseURL = "https://leetcode.com/graphql"

// Profile summarizes a LeetCode account.
type Profile struct {
	Username     string   `json:"username"`
	Ranking      int      `json:"ranking"`
	Reputation   int      `json:"reputation"`
	TotalSolved  int      `json:"totalSolved"`
	EasySolved   int      `json:"easySolved"`
	MediumSolved int      `json:"mediumSolved"`
	HardSolved   int      `json:"hardSolved"`
	Badges       []string `json:"badges,omitempty"`
}

// Client implements platforms.Fetcher for LeetCode.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the GraphQL endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// New builds a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Platform() string { return "leetcode" }

const profileQuery = `query($username: String!) {
  matchedUser(username: $username) {
    username
    profile { ranking reputation }
    submitStatsGlobal { acSubmissionNum { difficulty count } }
    badges { displayName }
  }
}`

type graphqlResponse struct {
	Data struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				Ranking    int `json:"ranking"`
				Reputation int `json:"reputation"`
			} `json:"profile"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
			Badges []struct {
				DisplayName string `json:"displayName"`
			} `json:"badges"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch implements platforms.Fetcher. LeetCode has no documented rate-limit
// headers, so results are never truncated.
func (c *Client) Fetch(ctx context.Context, handle string) (any, bool, error) {
	if !platforms.ValidHandle(handle) {
		return nil, false, platforms.ErrInvalidHandle
	}

	body, err := json.Marshal(map[string]any{
		"query":     profileQuery,
		"variables": map[string]string{"username": handle},
	})
	if err != nil {
		return nil, false, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, platforms.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, platforms.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, false, platforms.ErrUpstreamUnavailable
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("leetcode status %d", resp.StatusCode)
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("decode leetcode response: %w", err)
	}
	if parsed.Data.MatchedUser == nil {
		return nil, false, platforms.ErrProfileNotFound
	}

	user := parsed.Data.MatchedUser
	profile := &Profile{
		Username:   user.Username,
		Ranking:    user.Profile.Ranking,
		Reputation: user.Profile.Reputation,
	}
	for _, stat := range user.SubmitStatsGlobal.AcSubmissionNum {
		switch stat.Difficulty {
		case "All":
			profile.TotalSolved = stat.Count
		case "Easy":
			profile.EasySolved = stat.Count
		case "Medium":
			profile.MediumSolved = stat.Count
		case "Hard":
			profile.HardSolved = stat.Count
		}
	}
	for _, b := range user.Badges {
		profile.Badges = append(profile.Badges, b.DisplayName)
	}
	return profile, false, nil
}
