// Package history persists completed analysis envelopes per user.
package history

import (
	"encoding/json"
	"time"
)

// Entry is one saved analysis.
type Entry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	FileName  string          `json:"fileName"`
	ATSScore  float64         `json:"atsScore"`
	WordCount int             `json:"wordCount"`
	Envelope  json.RawMessage `json:"envelope"`
	CreatedAt time.Time       `json:"createdAt"`
}
