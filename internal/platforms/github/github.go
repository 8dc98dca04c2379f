// Package github fetches public GitHub profiles. With a token configured it
// uses the GraphQL API; without one it falls back to the REST API and
// paginates repositories while watching the rate-limit budget.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"devboard-backend/internal/platforms"
	"devboard-backend/internal/shared/telemetry"
)

const (
	defaultRESTBase    = "https://api.github.com"
	defaultGraphQLBase = "https://api.github.com/graphql"

	// Pagination stops early once the reported remaining quota drops below
	// this mark, leaving headroom for other requests in flight.
	rateLimitLowWater = 10

	maxRepoPages = 3
)

// Profile is the aggregated view of a GitHub account.
type Profile struct {
	Login         string         `json:"login"`
	Name          string         `json:"name,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	Followers     int            `json:"followers"`
	Following     int            `json:"following"`
	PublicRepos   int            `json:"publicRepos"`
	TotalStars    int            `json:"totalStars"`
	TotalForks    int            `json:"totalForks"`
	Contributions int            `json:"contributionsLastYear,omitempty"`
	TopLanguages  []LanguageStat `json:"topLanguages"`
	TopRepos      []Repo         `json:"topRepos"`
}

// LanguageStat counts repositories per primary language.
type LanguageStat struct {
	Language string `json:"language"`
	Repos    int    `json:"repos"`
}

// Repo is a trimmed repository record.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
}

// Client implements platforms.Fetcher for GitHub.
type Client struct {
	token       string
	restBase    string
	graphqlBase string
	http        *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURLs overrides both API endpoints. Used by tests.
func WithBaseURLs(rest, graphql string) Option {
	return func(c *Client) {
		c.restBase = rest
		c.graphqlBase = graphql
	}
}

// New builds a Client. An empty token selects the unauthenticated REST path.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:       token,
		restBase:    defaultRESTBase,
		graphqlBase: defaultGraphQLBase,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Platform() string { return "github" }

// Fetch implements platforms.Fetcher.
func (c *Client) Fetch(ctx context.Context, handle string) (any, bool, error) {
	if !platforms.ValidHandle(handle) {
		return nil, false, platforms.ErrInvalidHandle
	}
	if c.token != "" {
		profile, err := c.fetchGraphQL(ctx, handle)
		if err == nil {
			return profile, false, nil
		}
		if err == platforms.ErrProfileNotFound || err == platforms.ErrRateLimited {
			return nil, false, err
		}
		telemetry.Error("github.graphql_fallback", map[string]any{"handle": handle, "error": err.Error()})
	}
	return c.fetchREST(ctx, handle)
}

const profileQuery = `query($login: String!) {
  user(login: $login) {
    login name bio
    followers { totalCount }
    following { totalCount }
    contributionsCollection { contributionCalendar { totalContributions } }
    repositories(first: 100, ownerAffiliations: OWNER, orderBy: {field: STARGAZERS, direction: DESC}) {
      totalCount
      nodes {
        name description stargazerCount forkCount
        primaryLanguage { name }
      }
    }
  }
}`

type graphqlResponse struct {
	Data struct {
		User *struct {
			Login     string `json:"login"`
			Name      string `json:"name"`
			Bio       string `json:"bio"`
			Followers struct {
				TotalCount int `json:"totalCount"`
			} `json:"followers"`
			Following struct {
				TotalCount int `json:"totalCount"`
			} `json:"following"`
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
			Repositories struct {
				TotalCount int `json:"totalCount"`
				Nodes      []struct {
					Name            string `json:"name"`
					Description     string `json:"description"`
					StargazerCount  int    `json:"stargazerCount"`
					ForkCount       int    `json:"forkCount"`
					PrimaryLanguage *struct {
						Name string `json:"name"`
					} `json:"primaryLanguage"`
				} `json:"nodes"`
			} `json:"repositories"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) fetchGraphQL(ctx context.Context, handle string) (*Profile, error) {
	body, err := json.Marshal(map[string]any{
		"query":     profileQuery,
		"variables": map[string]string{"login": handle},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlBase, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, platforms.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if remaining(resp) == 0 {
			return nil, platforms.ErrRateLimited
		}
		return nil, fmt.Errorf("graphql status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, platforms.ErrUpstreamUnavailable
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<22)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode graphql: %w", err)
	}
	for _, e := range parsed.Errors {
		if e.Type == "NOT_FOUND" {
			return nil, platforms.ErrProfileNotFound
		}
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", parsed.Errors[0].Message)
	}
	user := parsed.Data.User
	if user == nil {
		return nil, platforms.ErrProfileNotFound
	}

	profile := &Profile{
		Login:         user.Login,
		Name:          user.Name,
		Bio:           user.Bio,
		Followers:     user.Followers.TotalCount,
		Following:     user.Following.TotalCount,
		PublicRepos:   user.Repositories.TotalCount,
		Contributions: user.ContributionsCollection.ContributionCalendar.TotalContributions,
	}
	langs := make(map[string]int)
	for _, node := range user.Repositories.Nodes {
		profile.TotalStars += node.StargazerCount
		profile.TotalForks += node.ForkCount
		lang := ""
		if node.PrimaryLanguage != nil {
			lang = node.PrimaryLanguage.Name
		}
		if lang != "" {
			langs[lang]++
		}
		if len(profile.TopRepos) < 6 {
			profile.TopRepos = append(profile.TopRepos, Repo{
				Name:        node.Name,
				Description: node.Description,
				Language:    lang,
				Stars:       node.StargazerCount,
				Forks:       node.ForkCount,
			})
		}
	}
	profile.TopLanguages = rankLanguages(langs)
	return profile, nil
}

type restUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

type restRepo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Fork            bool   `json:"fork"`
}

func (c *Client) fetchREST(ctx context.Context, handle string) (any, bool, error) {
	var user restUser
	if _, err := c.getJSON(ctx, c.restBase+"/users/"+handle, &user); err != nil {
		return nil, false, err
	}

	profile := &Profile{
		Login:       user.Login,
		Name:        user.Name,
		Bio:         user.Bio,
		Followers:   user.Followers,
		Following:   user.Following,
		PublicRepos: user.PublicRepos,
	}

	truncated := false
	langs := make(map[string]int)
	var repos []restRepo
	for page := 1; page <= maxRepoPages; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated&page=%d", c.restBase, handle, page)
		var batch []restRepo
		rem, err := c.getJSON(ctx, url, &batch)
		if err != nil {
			// Profile already fetched; a repo-page failure degrades to a
			// truncated success rather than failing the whole slot.
			truncated = true
			telemetry.Error("github.repos_page", map[string]any{"handle": handle, "page": page, "error": err.Error()})
			break
		}
		repos = append(repos, batch...)
		if len(batch) < 100 {
			break
		}
		if rem >= 0 && rem < rateLimitLowWater {
			truncated = true
			telemetry.Info("github.truncated", map[string]any{"handle": handle, "remaining": rem})
			break
		}
		if page == maxRepoPages {
			truncated = true
		}
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].StargazersCount > repos[j].StargazersCount })
	for _, r := range repos {
		profile.TotalStars += r.StargazersCount
		profile.TotalForks += r.ForksCount
		if r.Language != "" {
			langs[r.Language]++
		}
		if len(profile.TopRepos) < 6 && !r.Fork {
			profile.TopRepos = append(profile.TopRepos, Repo{
				Name:        r.Name,
				Description: r.Description,
				Language:    r.Language,
				Stars:       r.StargazersCount,
				Forks:       r.ForksCount,
			})
		}
	}
	profile.TopLanguages = rankLanguages(langs)
	return profile, truncated, nil
}

// getJSON performs a GET, decodes into out, and returns the remaining
// rate-limit quota (-1 when the header is absent).
func (c *Client) getJSON(ctx context.Context, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return -1, platforms.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	rem := remaining(resp)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return rem, platforms.ErrProfileNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return rem, platforms.ErrRateLimited
	case resp.StatusCode >= 500:
		return rem, platforms.ErrUpstreamUnavailable
	case resp.StatusCode != http.StatusOK:
		return rem, fmt.Errorf("github status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<22)).Decode(out); err != nil {
		return rem, fmt.Errorf("decode github response: %w", err)
	}
	return rem, nil
}

func remaining(resp *http.Response) int {
	v := resp.Header.Get("X-RateLimit-Remaining")
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func rankLanguages(counts map[string]int) []LanguageStat {
	stats := make([]LanguageStat, 0, len(counts))
	for lang, n := range counts {
		stats = append(stats, LanguageStat{Language: lang, Repos: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Repos != stats[j].Repos {
			return stats[i].Repos > stats[j].Repos
		}
		return stats[i].Language < stats[j].Language
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}
	return stats
}
