package resume

import (
	"regexp"
	"sort"
	"strings"
)

// Canonical programming language names mapped from common aliases.
var programmingLanguages = map[string][]string{
	"c":          {"c language", "c lang"},
	"c++":        {"cpp", "c plus plus"},
	"c#":         {"csharp"},
	"java":       {"core java", "advanced java"},
	"python":     {"python programming"},
	"javascript": {"js", "nodejs", "node js"},
	"typescript": nil,
	"ruby":       nil,
	"go":         {"golang"},
	"swift":      nil,
	"kotlin":     nil,
	"php":        nil,
	"r":          {"r language"},
	"matlab":     nil,
	"scala":      nil,
	"perl":       nil,
	"rust":       nil,
}

// Canonical tool/technology names mapped from common aliases.
var skillSynonyms = map[string][]string{
	"excel":            {"ms excel", "microsoft excel"},
	"power bi":         {"powerbi"},
	"mysql":            {"my sql"},
	"postgresql":       {"postgres"},
	"mongodb":          nil,
	"redis":            nil,
	"html":             {"html5"},
	"css":              {"css3"},
	"react":            {"reactjs", "react js"},
	"angular":          {"angularjs"},
	"vue":              {"vuejs", "vue js"},
	"node":             {"node.js"},
	"express":          nil,
	"django":           nil,
	"flask":            nil,
	"fastapi":          nil,
	"spring":           {"spring boot"},
	"git":              {"git version control"},
	"github":           {"github actions"},
	"gitlab":           {"gitlab ci/cd"},
	"jira":             nil,
	"jenkins":          nil,
	"vscode":           {"visual studio code", "vs code"},
	"jupyter":          {"jupyter notebook", "jupyter lab"},
	"postman":          nil,
	"figma":            nil,
	"docker":           nil,
	"kubernetes":       {"k8s"},
	"terraform":        nil,
	"ansible":          nil,
	"aws":              {"amazon web services"},
	"azure":            {"microsoft azure"},
	"gcp":              {"google cloud platform", "google cloud"},
	"firebase":         nil,
	"linux":            nil,
	"bash":             {"bash scripting", "shell scripting"},
	"kafka":            {"apache kafka"},
	"rabbitmq":         {"rabbit mq"},
	"elasticsearch":    {"elastic search"},
	"grafana":          nil,
	"prometheus":       nil,
	"tensorflow":       nil,
	"pytorch":          nil,
	"scikit-learn":     {"sklearn"},
	"pandas":           nil,
	"numpy":            nil,
	"tableau":          nil,
	"selenium":         nil,
	"graphql":          {"graph ql"},
	"rest":             {"restful", "rest api"},
	"grpc":             nil,
	"microservices":    nil,
	"oracle":           {"oracle db", "oracle database"},
	"salesforce":       nil,
	"wordpress":        nil,
	"active directory": {"ad"},
}

var (
	progLangPattern = regexp.MustCompile(`(^|[^a-z0-9+#])(c\+\+|c#|c|java|python|javascript|typescript|php|r|go|golang|ruby|swift|kotlin|scala|perl|rust)($|[^a-z0-9+#])`)
	skillSplit      = regexp.MustCompile(`[,\n;|/•·]`)
	versionSuffix   = regexp.MustCompile(`\s*\d+(\.\d+)*\b`)
	nonWord         = regexp.MustCompile(`[^\w\s+#-]`)
)

var softSkillKeywords = []string{
	"leadership", "communication", "teamwork", "problem solving", "ownership", "adaptability",
}

var interestHeadings = []string{
	"area of interest", "areas of interest", "interests", "interest areas",
	"technical interests", "professional interests", "career interests",
	"domain interests", "fields of interest", "preferred domains",
}

// extractProgrammingLanguages finds canonical programming languages mentioned
// in the text. Matching is deliberately conservative for one-letter names.
func extractProgrammingLanguages(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	for canonical, aliases := range programmingLanguages {
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				found[canonical] = struct{}{}
			}
		}
	}

	for _, match := range progLangPattern.FindAllStringSubmatch(lower, -1) {
		name := match[2]
		if name == "golang" {
			name = "go"
		}
		found[name] = struct{}{}
	}

	// "R" and "C" false-positive guard: require a language-ish context word.
	for _, ambiguous := range []string{"r", "c"} {
		if _, ok := found[ambiguous]; ok {
			if !strings.Contains(lower, ambiguous+" programming") &&
				!strings.Contains(lower, ambiguous+" language") &&
				!strings.Contains(lower, ", "+ambiguous+",") &&
				!strings.Contains(lower, ", "+ambiguous+"\n") {
				delete(found, ambiguous)
			}
		}
	}

	return canonicalList(found)
}

// extractTechnicalSkills splits the text on list delimiters and keeps items
// matching the known tool/technology tables.
func extractTechnicalSkills(text string) []string {
	lower := strings.ToLower(strings.ReplaceAll(text, "|", ","))
	found := make(map[string]struct{})

	for _, part := range skillSplit.Split(lower, -1) {
		part = strings.TrimSpace(nonWord.ReplaceAllString(part, " "))
		part = strings.Join(strings.Fields(part), " ")
		if len(part) < 2 {
			continue
		}
		part = strings.TrimSpace(versionSuffix.ReplaceAllString(part, ""))
		if part == "" {
			continue
		}
		if canonical, ok := normalizeSkill(part); ok {
			found[canonical] = struct{}{}
		}
	}

	// Catch keywords embedded in prose as well, not just delimited lists.
	for canonical, aliases := range skillSynonyms {
		if strings.Contains(lower, canonical) {
			found[canonical] = struct{}{}
			continue
		}
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				found[canonical] = struct{}{}
				break
			}
		}
	}

	return canonicalList(found)
}

func extractSoftSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, kw := range softSkillKeywords {
		if strings.Contains(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	return canonicalList(found)
}

// extractAreasOfInterest returns list items following an interest heading, or
// nil when no such heading exists. No guessing without a heading.
func extractAreasOfInterest(text string) []string {
	lower := strings.ToLower(text)
	idx := -1
	for _, heading := range interestHeadings {
		if i := strings.Index(lower, heading); i >= 0 && (idx == -1 || i < idx) {
			idx = i + len(heading)
		}
	}
	if idx < 0 {
		return nil
	}

	segment := lower[idx:]
	if end := strings.Index(segment, "\n\n"); end > 0 {
		segment = segment[:end]
	}
	if len(segment) > 400 {
		segment = segment[:400]
	}

	var out []string
	seen := make(map[string]struct{})
	for _, part := range skillSplit.Split(segment, -1) {
		part = strings.TrimSpace(strings.Trim(part, ":-• "))
		if part == "" || len(part) < 3 || len(part) > 60 {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, titleCase(part))
		if len(out) >= 8 {
			break
		}
	}
	return out
}

// mergeProgrammingIntoTechnical folds programming languages into the
// technical list without duplicates.
func mergeProgrammingIntoTechnical(prog, tech []string) []string {
	seen := make(map[string]struct{}, len(tech))
	merged := make([]string, 0, len(tech)+len(prog))
	for _, t := range tech {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, t)
	}
	for _, p := range prog {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, p)
	}
	sort.Strings(merged)
	return merged
}

func normalizeSkill(s string) (string, bool) {
	if _, ok := skillSynonyms[s]; ok {
		return s, true
	}
	for canonical, aliases := range skillSynonyms {
		for _, alias := range aliases {
			if s == alias {
				return canonical, true
			}
		}
	}
	return "", false
}

func canonicalList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, titleCase(s))
	}
	sort.Strings(out)
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
