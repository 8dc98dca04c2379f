// Package resume turns extracted resume text into a structured Report with
// a heuristic ATS score. An optional LLM pass refines the summary and skill
// lists; every field has a deterministic value without it.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"devboard-backend/internal/llm"
	"devboard-backend/internal/shared/telemetry"
)

// Parser analyzes resume text.
type Parser struct {
	llm llm.Client
}

// NewParser builds a Parser. client may be the llm.Placeholder.
func NewParser(client llm.Client) *Parser {
	return &Parser{llm: client}
}

// Parse produces a full Report. The heuristic pipeline always runs; the LLM
// only overlays a summary and extra skills on top of it, so a model failure
// never fails the request.
func (p *Parser) Parse(ctx context.Context, text string) (Report, error) {
	if strings.TrimSpace(text) == "" {
		return Report{}, errors.New("empty resume text")
	}

	sections := detectSections(text)
	prog := extractProgrammingLanguages(text)
	skills := Skills{
		Technical:            mergeProgrammingIntoTechnical(prog, extractTechnicalSkills(text)),
		ProgrammingLanguages: prog,
		Soft:                 extractSoftSkills(text),
		AreasOfInterest:      extractAreasOfInterest(text),
	}

	score, breakdown := scoreATS(text, sections, skills)
	report := Report{
		Contact:        extractContact(text),
		Skills:         skills,
		Languages:      extractLanguages(text),
		Education:      extractEducation(text),
		Sections:       sections,
		ATSScore:       score,
		ATSBreakdown:   breakdown,
		KeywordDensity: keywordDensity(text, skills),
		WordCount:      countWords(text),
	}
	report.Summary = p.summarize(ctx, text, report)
	return report, nil
}

type llmOverlay struct {
	Summary          string   `json:"summary"`
	AdditionalSkills []string `json:"additionalSkills"`
}

func (p *Parser) summarize(ctx context.Context, text string, report Report) string {
	fallback := heuristicSummary(report)
	if p.llm == nil {
		return fallback
	}

	excerpt := text
	if len(excerpt) > 6000 {
		excerpt = excerpt[:6000]
	}
	llmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	out, err := p.llm.Complete(llmCtx, llm.Request{
		System: "You summarize resumes for a career dashboard. Reply with a JSON object " +
			`{"summary": string, "additionalSkills": [string]}. The summary is 2-3 sentences.`,
		Prompt:      "Resume text:\n" + excerpt,
		Temperature: 0.2,
		MaxTokens:   400,
		JSONOnly:    true,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			telemetry.Error("resume.llm_fallback", map[string]any{"error": err.Error()})
		}
		return fallback
	}

	var overlay llmOverlay
	if err := json.Unmarshal([]byte(stripFences(out)), &overlay); err != nil {
		telemetry.Error("resume.llm_fallback", map[string]any{"error": "bad json"})
		return fallback
	}
	if len(overlay.AdditionalSkills) > 0 {
		report.Skills.Technical = mergeProgrammingIntoTechnical(overlay.AdditionalSkills, report.Skills.Technical)
	}
	if strings.TrimSpace(overlay.Summary) == "" {
		return fallback
	}
	return strings.TrimSpace(overlay.Summary)
}

// heuristicSummary builds a one-paragraph summary from what was extracted.
func heuristicSummary(r Report) string {
	var b strings.Builder
	if r.Contact.Name != "" {
		fmt.Fprintf(&b, "%s's resume ", r.Contact.Name)
	} else {
		b.WriteString("This resume ")
	}
	fmt.Fprintf(&b, "covers %d of 4 standard sections and scores %.0f/100 on ATS heuristics.", r.Sections.count(), r.ATSScore)
	if n := len(r.Skills.Technical); n > 0 {
		top := r.Skills.Technical
		if len(top) > 5 {
			top = top[:5]
		}
		fmt.Fprintf(&b, " Key skills include %s.", strings.Join(top, ", "))
	}
	return b.String()
}

// stripFences removes a markdown code fence if the model wrapped its JSON.
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
