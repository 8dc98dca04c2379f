package resume

import (
	"regexp"
	"strings"
)

var spokenLanguages = []string{
	"english", "hindi", "spanish", "french", "german", "mandarin", "chinese",
	"japanese", "korean", "portuguese", "russian", "arabic", "italian",
	"dutch", "bengali", "tamil", "telugu", "marathi", "gujarati", "kannada",
	"malayalam", "punjabi", "urdu",
}

var proficiencyPattern = regexp.MustCompile(`(?i)\b(native|fluent|professional|proficient|intermediate|conversational|basic|beginner)\b`)

// extractLanguages returns spoken languages with an optional proficiency
// qualifier when one appears on the same line, e.g. "English (Fluent)".
func extractLanguages(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, lang := range spokenLanguages {
			start := indexWord(lower, lang)
			if start < 0 {
				continue
			}
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			entry := titleCase(lang)
			// The qualifier belongs to this language only, so look at the
			// text between it and the next entry on the line.
			segment := line[start+len(lang):]
			if comma := strings.IndexByte(segment, ','); comma >= 0 {
				segment = segment[:comma]
			}
			if m := proficiencyPattern.FindString(segment); m != "" {
				entry += " (" + titleCase(strings.ToLower(m)) + ")"
			}
			out = append(out, entry)
		}
	}
	return out
}

func containsWord(haystack, word string) bool {
	return indexWord(haystack, word) >= 0
}

// indexWord finds word in haystack on word boundaries and returns its start
// index, or -1.
func indexWord(haystack, word string) int {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return -1
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return start
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
