package portfolio

import (
	"context"
	"errors"
	"testing"

	"devboard-backend/internal/analyze"
	"devboard-backend/internal/history"
	"devboard-backend/internal/platforms"
	githubplatform "devboard-backend/internal/platforms/github"
	"devboard-backend/internal/resume"
)

func envelopeFixture() analyze.Envelope {
	skills := make([]string, 0, 20)
	for _, s := range []string{
		"Go", "Python", "Docker", "Kubernetes", "Postgresql", "Redis", "Aws", "Git",
		"React", "Node", "Graphql", "Rest", "Linux", "Bash", "Terraform", "Kafka",
		"Grafana", "Prometheus", "Jenkins", "Ansible",
	} {
		skills = append(skills, s)
	}
	repos := make([]githubplatform.Repo, 8)
	for i := range repos {
		repos[i] = githubplatform.Repo{Name: "proj", Stars: 10 - i, Language: "Go"}
	}
	return analyze.Envelope{
		Resume: resume.Report{
			Contact:  resume.Contact{Name: "Jane Candidate"},
			Skills:   resume.Skills{Technical: skills},
			ATSScore: 78,
			Summary:  "Backend engineer.",
		},
		Platforms: analyze.PlatformSlots{
			GitHub: platforms.Success(&githubplatform.Profile{
				TotalStars: 44, Followers: 12, TopRepos: repos,
			}, false),
			LeetCode: platforms.Skipped("no handle provided"),
			CodeChef: platforms.Failed("profile not found"),
		},
	}
}

func seededService(t *testing.T) *Service {
	t.Helper()
	hist := history.NewService(history.NewMemoryRepo())
	if err := hist.Save(context.Background(), "u1", "resume.pdf", envelopeFixture()); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	return NewService(NewMemoryRepo(), hist)
}

func TestGenerateCapsSkillsAndProjects(t *testing.T) {
	s := seededService(t)
	p, err := s.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(p.Skills) != maxSkills {
		t.Errorf("skills = %d, want %d", len(p.Skills), maxSkills)
	}
	if len(p.Projects) != maxProjects {
		t.Errorf("projects = %d, want %d", len(p.Projects), maxProjects)
	}
	if p.Stats.GitHubStars != 44 || p.Stats.ATSScore != 78 {
		t.Errorf("stats = %+v", p.Stats)
	}
}

func TestGenerateSlugIsStableAndResolvable(t *testing.T) {
	s := seededService(t)
	first, err := s.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := s.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Generate again: %v", err)
	}
	if first.Slug != second.Slug {
		t.Errorf("slug changed: %q -> %q", first.Slug, second.Slug)
	}

	got, err := s.BySlug(context.Background(), first.Slug)
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if got.Name != "Jane Candidate" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestGenerateWithoutHistory(t *testing.T) {
	s := NewService(NewMemoryRepo(), history.NewService(history.NewMemoryRepo()))
	_, err := s.Generate(context.Background(), "nobody")
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestSlugDistinctForSameName(t *testing.T) {
	a := slugFor("Jane Candidate", "user-aaaa1111")
	b := slugFor("Jane Candidate", "user-bbbb2222")
	if a == b {
		t.Errorf("slugs collide: %q", a)
	}
}
