package resume

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[\s\-]?)?\(?\d{3,5}\)?[\s\-]?\d{3}[\s\-]?\d{3,4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9_\-]+)`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_\-]+)`)
	leetcodePattern = regexp.MustCompile(`(?i)leetcode\.com/(?:u/)?([A-Za-z0-9_\-]+)`)
	codechefPattern = regexp.MustCompile(`(?i)codechef\.com/users/([A-Za-z0-9_\-]+)`)
)

// extractContact pulls identity fields out of the raw text. Profile handles
// come from recognized URLs only, never bare words.
func extractContact(text string) Contact {
	c := Contact{
		Email: emailPattern.FindString(text),
	}

	if m := phonePattern.FindString(text); len(strings.Map(keepDigits, m)) >= 10 {
		c.Phone = strings.TrimSpace(m)
	}
	if m := linkedinPattern.FindStringSubmatch(text); m != nil {
		c.LinkedIn = m[1]
	}
	if m := githubPattern.FindStringSubmatch(text); m != nil {
		c.GitHub = m[1]
	}
	if m := leetcodePattern.FindStringSubmatch(text); m != nil {
		c.LeetCode = m[1]
	}
	if m := codechefPattern.FindStringSubmatch(text); m != nil {
		c.CodeChef = m[1]
	}
	c.Name = guessName(text)
	return c
}

// guessName takes the first short non-heading line near the top of the
// document. Resumes almost always lead with the candidate's name.
func guessName(text string) string {
	lines := strings.Split(text, "\n")
	limit := 5
	for _, line := range lines {
		if limit == 0 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		limit--
		if len(line) > 60 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.ContainsAny(line, "@/:") || strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 4 {
			continue
		}
		digits := strings.Map(keepDigits, line)
		if digits != "" {
			continue
		}
		return line
	}
	return ""
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
