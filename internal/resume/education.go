package resume

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	degreePattern  = regexp.MustCompile(`(?i)\b(b\.?tech|m\.?tech|b\.e\.?|m\.e\.?|b\.?sc|m\.?sc|bca|mca|mba|bachelor|master)\b`)
	cgpaPattern    = regexp.MustCompile(`(?i)\bcgpa\b[^0-9]{0,20}(\d+(?:\.\d+)?)`)
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	tenthPattern   = regexp.MustCompile(`(?i)\b(10th|class\s*x|ssc|matriculation)\b`)
	twelfthPattern = regexp.MustCompile(`(?i)\b(12th|class\s*xii|hsc|intermediate)\b`)
)

// Education carries schooling details found in the resume. Zero values mean
// the resume did not state the figure.
type Education struct {
	Degree            string  `json:"degree,omitempty"`
	CGPA              float64 `json:"cgpa,omitempty"`
	TenthPercentage   float64 `json:"tenthPercentage,omitempty"`
	TwelfthPercentage float64 `json:"twelfthPercentage,omitempty"`
}

// extractEducation scans line by line; the first plausible hit wins for each
// field. CGPA strings like "8.32 (upto 5th semester)" keep only the number.
func extractEducation(text string) Education {
	var edu Education
	for _, line := range strings.Split(text, "\n") {
		if edu.Degree == "" && degreePattern.MatchString(line) {
			edu.Degree = strings.Trim(strings.TrimSpace(line), "•-* \t")
		}
		if edu.CGPA == 0 {
			if m := cgpaPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil && v <= 10 {
					edu.CGPA = v
				}
			}
		}
		if edu.TwelfthPercentage == 0 && twelfthPattern.MatchString(line) {
			edu.TwelfthPercentage = percentOn(line)
		} else if edu.TenthPercentage == 0 && tenthPattern.MatchString(line) {
			edu.TenthPercentage = percentOn(line)
		}
	}
	return edu
}

func percentOn(line string) float64 {
	m := percentPattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v > 100 {
		return 0
	}
	return v
}
