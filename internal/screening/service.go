// Package screening filters batches of uploaded resumes against recruiter
// criteria, reusing the single-resume parsing pipeline. Unreadable files are
// skipped so one bad upload never sinks the batch.
package screening

import (
	"context"
	"strings"

	"devboard-backend/internal/extract"
	"devboard-backend/internal/resume"
)

// Criteria bounds a batch filter. Zero values mean no bound on that field.
type Criteria struct {
	MinCGPA    float64
	MaxCGPA    float64
	MinTenth   float64
	MaxTenth   float64
	MinTwelfth float64
	MaxTwelfth float64
	MinATS     float64
	Skills     []string
	Language   string
	Degree     string
	Interest   string
}

// File is one uploaded resume.
type File struct {
	Name string
	Data []byte
}

// Match is one resume that passed every filter.
type Match struct {
	FileName  string           `json:"fileName"`
	Name      string           `json:"name,omitempty"`
	Email     string           `json:"email,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	ATSScore  float64          `json:"atsScore"`
	Education resume.Education `json:"education"`
	Skills    resume.Skills    `json:"skills"`
	Languages []string         `json:"languages"`
}

// Progress reports one processed file during a batch run.
type Progress struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	FileName  string `json:"fileName"`
	Matched   bool   `json:"matched"`
}

// Service runs batch resume filters.
type Service struct {
	parser      *resume.Parser
	extractText func(ctx context.Context, data []byte) (string, error)
}

// NewService builds a Service.
func NewService(parser *resume.Parser) *Service {
	return &Service{parser: parser, extractText: extract.PDFText}
}

// Filter parses each file in order and collects those passing the criteria.
// onProgress, when non-nil, runs after every file.
func (s *Service) Filter(ctx context.Context, files []File, crit Criteria, onProgress func(Progress)) []Match {
	var out []Match
	for i, f := range files {
		matched := false
		if report, ok := s.parseFile(ctx, f); ok && matches(report, crit) {
			out = append(out, Match{
				FileName:  f.Name,
				Name:      report.Contact.Name,
				Email:     report.Contact.Email,
				Phone:     report.Contact.Phone,
				ATSScore:  report.ATSScore,
				Education: report.Education,
				Skills:    report.Skills,
				Languages: report.Languages,
			})
			matched = true
		}
		if onProgress != nil {
			onProgress(Progress{Processed: i + 1, Total: len(files), FileName: f.Name, Matched: matched})
		}
	}
	return out
}

func (s *Service) parseFile(ctx context.Context, f File) (resume.Report, bool) {
	if len(f.Data) == 0 {
		return resume.Report{}, false
	}
	text, err := s.extractText(ctx, f.Data)
	if err != nil {
		return resume.Report{}, false
	}
	report, err := s.parser.Parse(ctx, text)
	if err != nil {
		return resume.Report{}, false
	}
	return report, true
}

// matches applies range bounds first, then the textual filters. Required
// skills must all appear; language and interest need any one hit.
func matches(r resume.Report, c Criteria) bool {
	edu := r.Education
	switch {
	case c.MinCGPA > 0 && edu.CGPA < c.MinCGPA:
		return false
	case c.MaxCGPA > 0 && edu.CGPA > c.MaxCGPA:
		return false
	case c.MinTenth > 0 && edu.TenthPercentage < c.MinTenth:
		return false
	case c.MaxTenth > 0 && edu.TenthPercentage > c.MaxTenth:
		return false
	case c.MinTwelfth > 0 && edu.TwelfthPercentage < c.MinTwelfth:
		return false
	case c.MaxTwelfth > 0 && edu.TwelfthPercentage > c.MaxTwelfth:
		return false
	case c.MinATS > 0 && r.ATSScore < c.MinATS:
		return false
	}

	if c.Language != "" && !anyContains(r.Languages, c.Language) {
		return false
	}
	if c.Degree != "" && !strings.Contains(strings.ToLower(edu.Degree), strings.ToLower(strings.TrimSpace(c.Degree))) {
		return false
	}
	if c.Interest != "" && !anyContains(r.Skills.AreasOfInterest, c.Interest) {
		return false
	}
	for _, skill := range c.Skills {
		if !anyContains(r.Skills.Technical, skill) {
			return false
		}
	}
	return true
}

func anyContains(haystack []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
