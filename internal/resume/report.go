package resume

// Report is the structured output of resume parsing plus heuristic scores.
type Report struct {
	Contact        Contact            `json:"contact"`
	Skills         Skills             `json:"skills"`
	Languages      []string           `json:"languages"`
	Education      Education          `json:"education"`
	Sections       SectionCoverage    `json:"sections"`
	ATSScore       float64            `json:"atsScore"`
	ATSBreakdown   map[string]float64 `json:"atsBreakdown"`
	KeywordDensity float64            `json:"keywordDensity"`
	WordCount      int                `json:"wordCount"`
	Summary        string             `json:"summary,omitempty"`
}

// Contact carries identity fields found in the resume text.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LeetCode string `json:"leetcode,omitempty"`
	CodeChef string `json:"codechef,omitempty"`
}

// Skills groups extracted skills by kind.
type Skills struct {
	Technical            []string `json:"technical"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Soft                 []string `json:"soft"`
	AreasOfInterest      []string `json:"areasOfInterest"`
}

// SectionCoverage flags which standard resume sections were found.
type SectionCoverage struct {
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
	Projects   bool `json:"projects"`
}

func (s SectionCoverage) count() int {
	n := 0
	for _, present := range []bool{s.Experience, s.Education, s.Skills, s.Projects} {
		if present {
			n++
		}
	}
	return n
}
