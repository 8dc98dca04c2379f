// Package portfolio generates shareable public portfolios from a user's
// latest saved analysis.
package portfolio

import "time"

// Portfolio is the public view generated from an analysis envelope.
type Portfolio struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline,omitempty"`
	Skills    []string  `json:"skills"`
	Languages []string  `json:"languages,omitempty"`
	Projects  []Project `json:"projects"`
	Stats     Stats     `json:"stats"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a highlighted repository.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
}

// Stats carries cross-platform numbers worth showing publicly.
type Stats struct {
	ATSScore        float64 `json:"atsScore"`
	GitHubStars     int     `json:"githubStars,omitempty"`
	GitHubFollowers int     `json:"githubFollowers,omitempty"`
	ProblemsSolved  int     `json:"problemsSolved,omitempty"`
	ContestRating   int     `json:"contestRating,omitempty"`
}
