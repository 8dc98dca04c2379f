// Package codechef scrapes public CodeChef profile pages. CodeChef has no
// public profile API, so the rating and solved counts come out of the HTML.
package codechef

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"devboard-backend/internal/platforms"
)

const defaultBaseURL = "https://www.codechef.com"

// Profile summarizes a CodeChef account.
type Profile struct {
	Username       string `json:"username"`
	Rating         int    `json:"rating"`
	HighestRating  int    `json:"highestRating"`
	Stars          string `json:"stars,omitempty"`
	GlobalRank     int    `json:"globalRank,omitempty"`
	CountryRank    int    `json:"countryRank,omitempty"`
	ProblemsSolved int    `json:"problemsSolved"`
}

// Client implements platforms.Fetcher for CodeChef.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the site root. Used by tests.
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

func (c *Client) Platform() string { return "codechef" }

// Fetch implements platforms.Fetcher. Scraped pages are single requests, so
// results are never truncated.
func (c *Client) Fetch(ctx context.Context, handle string) (any, bool, error) {
	if !platforms.ValidHandle(handle) {
		return nil, false, platforms.ErrInvalidHandle
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+handle, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", "devboard-backend/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, platforms.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, platforms.ErrProfileNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, platforms.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, false, platforms.ErrUpstreamUnavailable
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("codechef status %d", resp.StatusCode)
	}

	profile, err := parseProfile(io.LimitReader(resp.Body, 1<<22), handle)
	if err != nil {
		return nil, false, err
	}
	return profile, false, nil
}

var (
	highestPattern = regexp.MustCompile(`(?i)highest rating\s*(\d{3,4})`)
	solvedPattern  = regexp.MustCompile(`(?i)total problems solved:\s*(\d+)`)
	rankPattern    = regexp.MustCompile(`(\d+)`)
)

// parseProfile walks the profile DOM. CodeChef removing a handle renders a
// page without the rating widget, which reads the same as not found.
func parseProfile(r io.Reader, handle string) (*Profile, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse profile page: %w", err)
	}

	p := &Profile{Username: handle}
	var ranks []int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "rating-number"):
				p.Rating = firstInt(textOf(n))
			case hasClass(n, "rating-star"):
				p.Stars = strings.TrimSpace(textOf(n))
			case hasClass(n, "rating-ranks"):
				for _, m := range rankPattern.FindAllString(textOf(n), -1) {
					if v, err := strconv.Atoi(m); err == nil {
						ranks = append(ranks, v)
					}
				}
			case hasClass(n, "rating-header"):
				if m := highestPattern.FindStringSubmatch(textOf(n)); m != nil {
					p.HighestRating, _ = strconv.Atoi(m[1])
				}
			case hasClass(n, "rating-data-section"):
				if m := solvedPattern.FindStringSubmatch(textOf(n)); m != nil {
					p.ProblemsSolved, _ = strconv.Atoi(m[1])
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if len(ranks) > 0 {
		p.GlobalRank = ranks[0]
	}
	if len(ranks) > 1 {
		p.CountryRank = ranks[1]
	}
	if p.Rating == 0 {
		return nil, platforms.ErrProfileNotFound
	}
	return p, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func firstInt(s string) int {
	if m := rankPattern.FindString(s); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}
