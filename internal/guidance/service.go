// Package guidance produces career guidance, role prediction, and chat
// replies. Every operation has a deterministic fallback with the same
// response shape, so an unconfigured or failing model never surfaces as an
// API error.
package guidance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"devboard-backend/internal/llm"
	"devboard-backend/internal/shared/telemetry"
)

// Answer sources.
const (
	SourceModel    = "llm"
	SourceFallback = "fallback"
)

// careerTracks maps a target role to the skills it expects. Lowercase keys.
var careerTracks = map[string][]string{
	"Web Development":     {"html", "css", "javascript", "react", "node", "rest"},
	"Backend Development": {"go", "java", "python", "rest", "postgresql", "docker", "microservices"},
	"Data Science":        {"python", "pandas", "numpy", "sql", "tableau", "excel"},
	"Machine Learning":    {"python", "tensorflow", "pytorch", "scikit-learn", "numpy"},
	"Cloud Engineering":   {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "linux"},
	"Cybersecurity":       {"linux", "networking", "python", "bash", "active directory"},
}

// GuidanceRequest asks how well a skill set fits a target role.
type GuidanceRequest struct {
	Skills     []string `json:"skills"`
	TargetRole string   `json:"targetRole"`
}

// GuidanceResponse reports alignment against the target role.
type GuidanceResponse struct {
	TargetRole      string   `json:"targetRole"`
	Alignment       float64  `json:"alignment"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Recommendations []string `json:"recommendations"`
	Source          string   `json:"source"`
}

// PredictionResponse names the best-fitting role for a skill set.
type PredictionResponse struct {
	Role          string   `json:"role"`
	Confidence    float64  `json:"confidence"`
	MissingSkills []string `json:"missingSkills"`
	Source        string   `json:"source"`
}

// ChatRequest is a single user message with optional prior context.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// ChatResponse is the assistant reply.
type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

// Service answers guidance requests.
type Service struct {
	llm llm.Client
}

// NewService builds a Service. client may be the llm.Placeholder.
func NewService(client llm.Client) *Service {
	return &Service{llm: client}
}

// Guidance scores the skills against the target role. The model may refine
// recommendations; alignment math is always deterministic.
func (s *Service) Guidance(ctx context.Context, req GuidanceRequest) GuidanceResponse {
	resp := s.fallbackGuidance(req)

	out, err := s.complete(ctx, llm.Request{
		System: "You are a career coach. Reply with a JSON object " +
			`{"recommendations": [string]} of at most 5 concrete next steps.`,
		Prompt: fmt.Sprintf("Target role: %s\nCurrent skills: %s\nMissing skills: %s",
			resp.TargetRole, strings.Join(req.Skills, ", "), strings.Join(resp.MissingSkills, ", ")),
		Temperature: 0.3,
		MaxTokens:   400,
		JSONOnly:    true,
	})
	if err != nil {
		return resp
	}

	var overlay struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(stripFences(out)), &overlay); err != nil || len(overlay.Recommendations) == 0 {
		return resp
	}
	if len(overlay.Recommendations) > 5 {
		overlay.Recommendations = overlay.Recommendations[:5]
	}
	resp.Recommendations = overlay.Recommendations
	resp.Source = SourceModel
	return resp
}

// PredictRole names the closest career track. The model reply is parsed from
// "Role:" / "Missing Skills:" lines; anything unparseable falls back.
func (s *Service) PredictRole(ctx context.Context, skills []string) PredictionResponse {
	fallback := s.fallbackPrediction(skills)

	out, err := s.complete(ctx, llm.Request{
		System: "You are a career advisor. Given a skill list, answer in exactly two lines:\n" +
			"Role: <single best-fit role>\nMissing Skills: <comma-separated skills to learn>",
		Prompt:      "Skills: " + strings.Join(skills, ", "),
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return fallback
	}

	role, missing, ok := parseRolePrediction(out)
	if !ok {
		telemetry.Debug("guidance.predict_fallback", map[string]any{"reason": "unparseable reply"})
		return fallback
	}
	return PredictionResponse{
		Role:          role,
		Confidence:    fallback.Confidence,
		MissingSkills: missing,
		Source:        SourceModel,
	}
}

// Chat answers a free-form career question.
func (s *Service) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	prompt := req.Message
	if req.Context != "" {
		prompt = "Context:\n" + req.Context + "\n\nQuestion: " + req.Message
	}

	out, err := s.complete(ctx, llm.Request{
		System:      "You are a concise career assistant for software engineers. Answer in at most 4 sentences.",
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   400,
	})
	if err != nil || strings.TrimSpace(out) == "" {
		return ChatResponse{Reply: fallbackChatReply(req.Message), Source: SourceFallback}
	}
	return ChatResponse{Reply: strings.TrimSpace(out), Source: SourceModel}
}

func (s *Service) complete(ctx context.Context, req llm.Request) (string, error) {
	if s.llm == nil {
		return "", llm.ErrNotConfigured
	}
	llmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	out, err := s.llm.Complete(llmCtx, req)
	if err != nil && !errors.Is(err, llm.ErrNotConfigured) {
		telemetry.Error("guidance.llm_error", map[string]any{"error": err.Error()})
	}
	return out, err
}

// fallbackGuidance is the deterministic alignment computation.
func (s *Service) fallbackGuidance(req GuidanceRequest) GuidanceResponse {
	target := canonicalTrack(req.TargetRole)
	required, ok := careerTracks[target]
	if !ok {
		// Unknown role: grade against the closest known track instead of
		// refusing.
		pred := s.fallbackPrediction(req.Skills)
		target = pred.Role
		required = careerTracks[target]
	}

	have := skillSet(req.Skills)
	var matched, missing []string
	for _, skill := range required {
		if _, ok := have[skill]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	alignment := 0.0
	if len(required) > 0 {
		alignment = float64(len(matched)) / float64(len(required))
	}

	recs := make([]string, 0, 3)
	for i, skill := range missing {
		if i == 3 {
			break
		}
		recs = append(recs, "Learn "+titleSkill(skill)+" and build one small project with it.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your skills already cover this track. Deepen them with a production-grade project.")
	}

	return GuidanceResponse{
		TargetRole:      target,
		Alignment:       round2(alignment),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Recommendations: recs,
		Source:          SourceFallback,
	}
}

// fallbackPrediction picks the track with the highest skill overlap.
func (s *Service) fallbackPrediction(skills []string) PredictionResponse {
	have := skillSet(skills)

	names := make([]string, 0, len(careerTracks))
	for name := range careerTracks {
		names = append(names, name)
	}
	sort.Strings(names)

	best := "Backend Development"
	bestScore := -1.0
	var bestMissing []string
	for _, name := range names {
		required := careerTracks[name]
		matched := 0
		var missing []string
		for _, skill := range required {
			if _, ok := have[skill]; ok {
				matched++
			} else {
				missing = append(missing, skill)
			}
		}
		score := float64(matched) / float64(len(required))
		if score > bestScore {
			best, bestScore, bestMissing = name, score, missing
		}
	}

	return PredictionResponse{
		Role:          best,
		Confidence:    round2(bestScore),
		MissingSkills: bestMissing,
		Source:        SourceFallback,
	}
}

func fallbackChatReply(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "resume") || strings.Contains(msg, "ats"):
		return "Keep your resume to one page, lead bullets with action verbs, and quantify results. Run it through the analyzer here to see the section-by-section score."
	case strings.Contains(msg, "interview"):
		return "Practice data structures and system design on a schedule, and rehearse explaining past projects out loud. Consistency over weeks beats cramming."
	default:
		return "I can help with resumes, skill gaps, and role fit. Upload a resume or ask about a specific role to get a concrete answer."
	}
}

// parseRolePrediction reads "Role:" and "Missing Skills:" lines out of a
// model reply.
func parseRolePrediction(text string) (role string, missing []string, ok bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "role:"):
			role = strings.TrimSpace(line[len("role:"):])
		case strings.HasPrefix(lower, "missing skills:"):
			for _, part := range strings.Split(line[len("missing skills:"):], ",") {
				part = strings.TrimSpace(part)
				if part != "" && !strings.EqualFold(part, "none") {
					missing = append(missing, part)
				}
			}
		}
	}
	return role, missing, role != ""
}

func canonicalTrack(role string) string {
	lower := strings.ToLower(strings.TrimSpace(role))
	for name := range careerTracks {
		if strings.ToLower(name) == lower {
			return name
		}
	}
	switch {
	case strings.Contains(lower, "frontend") || strings.Contains(lower, "web"):
		return "Web Development"
	case strings.Contains(lower, "backend"):
		return "Backend Development"
	case strings.Contains(lower, "data"):
		return "Data Science"
	case strings.Contains(lower, "ml") || strings.Contains(lower, "machine"):
		return "Machine Learning"
	case strings.Contains(lower, "cloud") || strings.Contains(lower, "devops"):
		return "Cloud Engineering"
	case strings.Contains(lower, "security"):
		return "Cybersecurity"
	}
	return role
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}

func titleSkill(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
