package resume

import (
	"regexp"
	"strings"
)

var sectionHeadings = map[string][]string{
	"experience": {"experience", "work experience", "employment", "professional experience", "internship"},
	"education":  {"education", "academics", "academic background", "qualifications"},
	"skills":     {"skills", "technical skills", "skill set", "technologies"},
	"projects":   {"projects", "personal projects", "academic projects", "project work"},
}

var actionVerbs = []string{
	"built", "developed", "designed", "implemented", "led", "launched", "created",
	"improved", "optimized", "automated", "migrated", "managed", "delivered",
	"reduced", "increased", "architected", "deployed", "maintained", "integrated",
}

var certKeywords = []string{
	"certified", "certification", "certificate", "aws certified", "azure certified",
	"google certified", "scrum", "pmp", "ccna", "comptia",
}

var (
	bulletPattern      = regexp.MustCompile(`(?m)^\s*[•\-\*‣▪]`)
	achievementPattern = regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent|x\b|users|customers|requests|ms\b|seconds|hours|days|million|thousand|k\b)`)
	wordPattern        = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#.\-]*`)
	longLinePattern    = regexp.MustCompile(`(?m)^.{200,}$`)
)

// detectSections scans for standard resume section headings.
func detectSections(text string) SectionCoverage {
	lower := strings.ToLower(text)
	has := func(key string) bool {
		for _, h := range sectionHeadings[key] {
			if strings.Contains(lower, h) {
				return true
			}
		}
		return false
	}
	return SectionCoverage{
		Experience: has("experience"),
		Education:  has("education"),
		Skills:     has("skills"),
		Projects:   has("projects"),
	}
}

// scoreATS produces the heuristic score and its per-category breakdown.
// The total is clamped to [0, 100].
func scoreATS(text string, sections SectionCoverage, skills Skills) (float64, map[string]float64) {
	lower := strings.ToLower(text)
	words := wordPattern.FindAllString(lower, -1)
	wordCount := len(words)

	breakdown := make(map[string]float64, 8)

	// Section Coverage: 5 points per standard section, max 20.
	breakdown["Section Coverage"] = float64(sections.count()) * 5

	// Contact Info: email 5, phone or profile link 5, max 10.
	contact := extractContact(text)
	contactScore := 0.0
	if contact.Email != "" {
		contactScore += 5
	}
	if contact.Phone != "" || contact.LinkedIn != "" || contact.GitHub != "" {
		contactScore += 5
	}
	breakdown["Contact Info"] = contactScore

	// Word Count: 5 for 500-1200, 3 for at least 300, else 0.
	switch {
	case wordCount >= 500 && wordCount <= 1200:
		breakdown["Word Count"] = 5
	case wordCount >= 300:
		breakdown["Word Count"] = 3
	default:
		breakdown["Word Count"] = 0
	}

	// Bullet Points: one point per bullet line, max 10.
	bullets := len(bulletPattern.FindAllString(text, -1))
	breakdown["Bullet Points"] = capFloat(float64(bullets), 10)

	// Action & Achievements: action verbs 1 each, quantified results 2 each, max 20.
	actions := 0
	for _, v := range actionVerbs {
		actions += strings.Count(lower, v)
	}
	metrics := len(achievementPattern.FindAllString(lower, -1))
	breakdown["Action & Achievements"] = capFloat(float64(actions)+float64(metrics)*2, 20)

	// Skills Strength: technical 1.5 each, programming languages 1 each, max 30.
	skillScore := float64(len(skills.Technical))*1.5 + float64(len(skills.ProgrammingLanguages))
	breakdown["Skills Strength"] = capFloat(skillScore, 30)

	// Soft Skills & Certs: 1 per soft skill, 1 per certification keyword, max 5.
	certs := 0
	for _, kw := range certKeywords {
		if strings.Contains(lower, kw) {
			certs++
		}
	}
	breakdown["Soft Skills & Certs"] = capFloat(float64(len(skills.Soft)+certs), 5)

	// Formatting Penalty: very long unbroken lines suggest layout that ATS
	// parsers mangle.
	penalty := 0.0
	if len(longLinePattern.FindAllString(text, -1)) >= 3 {
		penalty = -5
	}
	breakdown["Formatting Penalty"] = penalty

	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total, breakdown
}

// keywordDensity is the share of words that match a known skill or language.
func keywordDensity(text string, skills Skills) float64 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 0
	}
	known := make(map[string]struct{})
	for _, list := range [][]string{skills.Technical, skills.ProgrammingLanguages} {
		for _, s := range list {
			known[strings.ToLower(s)] = struct{}{}
		}
	}
	hits := 0
	for _, w := range words {
		if _, ok := known[w]; ok {
			hits++
		}
	}
	return round2(float64(hits) / float64(len(words)))
}

func countWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

func capFloat(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
