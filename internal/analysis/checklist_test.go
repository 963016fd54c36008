package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Signals)
		item   string
		passed bool
	}{
		{"three strong verbs is not enough", func(s *Signals) { s.Verbs.StrongCount = 3 }, "Strong Action Verbs (3+)", false},
		{"four strong verbs pass", func(s *Signals) { s.Verbs.StrongCount = 4 }, "Strong Action Verbs (3+)", true},
		{"two weak verbs pass", func(s *Signals) { s.Verbs.WeakCount = 2 }, "No Weak Verbs", true},
		{"three weak verbs fail", func(s *Signals) { s.Verbs.WeakCount = 3 }, "No Weak Verbs", false},
		{"one buzzword fails", func(s *Signals) { s.Buzzwords.Count = 1 }, "No Buzzwords", false},
		{"seven skills fail", func(s *Signals) { s.Skills = make([]string, 7) }, "Technical Skills (8+)", false},
		{"eight skills pass", func(s *Signals) { s.Skills = make([]string, 8) }, "Technical Skills (8+)", true},
		{"email flag", func(s *Signals) { s.Sections.HasEmail = true }, "Email Address", true},
		{"certifications flag", func(s *Signals) { s.Sections.HasCertifications = true }, "Certifications", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Signals
			tt.mutate(&s)
			assert.Equal(t, tt.passed, checklistByName(BuildChecklist(s))[tt.item])
		})
	}
}

func TestChecklistOrderAndCategories(t *testing.T) {
	items := BuildChecklist(Signals{})
	require.Len(t, items, 14)

	expected := []struct {
		name     string
		category Category
	}{
		{"Email Address", CategoryContact},
		{"Phone Number", CategoryContact},
		{"LinkedIn URL", CategoryContact},
		{"Education Section", CategorySections},
		{"Experience Section", CategorySections},
		{"Projects Section", CategorySections},
		{"Skills Section", CategorySections},
		{"GitHub Profile", CategorySections},
		{"Quantified Achievements", CategoryContent},
		{"Strong Action Verbs (3+)", CategoryContent},
		{"No Weak Verbs", CategoryContent},
		{"No Buzzwords", CategoryContent},
		{"Certifications", CategoryContent},
		{"Technical Skills (8+)", CategorySkills},
	}
	for i, want := range expected {
		assert.Equal(t, want.name, items[i].Name)
		assert.Equal(t, want.category, items[i].Category)
	}
}

func TestATSScore(t *testing.T) {
	items := BuildChecklist(Signals{})
	assert.Equal(t, 14, ATSScore(items))

	for i := range items {
		items[i].Passed = true
	}
	assert.Equal(t, 100, ATSScore(items))

	items[0].Passed = false
	assert.Equal(t, 93, ATSScore(items))

	assert.Zero(t, ATSScore(nil))
}

func TestBuildSuggestions(t *testing.T) {
	t.Run("all gaps present", func(t *testing.T) {
		got := BuildSuggestions(Signals{}, []string{"go", "rust", "sql", "aws", "gcp", "azure"})
		require.Len(t, got, 4)

		assert.Equal(t, "Skills Gap", got[0].Category)
		assert.Equal(t, PriorityHigh, got[0].Priority)
		assert.Equal(t, "Add these missing skills: go, rust, sql, aws, gcp", got[0].Message)
		assert.Equal(t, "Contact", got[1].Category)
		assert.Equal(t, "Portfolio", got[2].Category)
		assert.Equal(t, PriorityMedium, got[2].Priority)
		assert.Equal(t, "Achievements", got[3].Category)
		assert.Equal(t, `Use format: "Increased X by Y%" or "Reduced Z by N hours"`, got[3].Action)
	})

	t.Run("strong resume", func(t *testing.T) {
		s := Signals{
			HasQuantified: true,
			Sections:      SectionFlags{HasLinkedIn: true, HasGitHub: true},
		}
		assert.Empty(t, BuildSuggestions(s, nil))
	})
}

func TestVerbCountsIndependentOfDisplay(t *testing.T) {
	a := NewAnalyzer(nil)
	text := "Led. Led, led! developed created designed implemented architected achieved improved increased decreased " +
		"worked helped assisted tried attempted participated involved"

	verbs := a.AnalyzeVerbs(text)
	assert.Equal(t, 12, verbs.StrongCount)
	assert.Len(t, verbs.StrongVerbs, 8)
	assert.Equal(t, "led", verbs.StrongVerbs[0])
	assert.Equal(t, 7, verbs.WeakCount)
	assert.Len(t, verbs.WeakVerbs, 5)
}

func TestVerbsAreExactTokens(t *testing.T) {
	a := NewAnalyzer(nil)
	verbs := a.AnalyzeVerbs("redeveloped leadership ledger")
	assert.Zero(t, verbs.StrongCount)
}

func TestSkillsAreSubstrings(t *testing.T) {
	a := NewAnalyzer(nil)
	skills := a.ExtractSkills("JavaScript")
	assert.Contains(t, skills, "java")
	assert.Contains(t, skills, "javascript")
	assert.Contains(t, skills, "r")
}

func TestQuantifiedAchievements(t *testing.T) {
	a := NewAnalyzer(nil)
	tests := []struct {
		text     string
		expected bool
	}{
		{"Cut costs by 30%", true},
		{"grew revenue 15 percent", true},
		{"made it 3x faster", true},
		{"saved $ 2000", true},
		{"served 500 users", true},
		{"shipped in 2 weeks", true},
		{"delivered 4 releases", true},
		{"managed a small team", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, a.HasQuantifiedAchievements(tt.text), tt.text)
	}
}

func TestBuzzwordsCap(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.DetectBuzzwords("Synergy rockstar ninja guru wizard, hardworking and passionate")
	assert.Equal(t, 7, got.Count)
	assert.Equal(t, []string{"synergy", "rockstar", "ninja", "guru", "wizard"}, got.Buzzwords)
}

func TestCheckSections(t *testing.T) {
	a := NewAnalyzer(nil)
	flags := a.CheckSections("Jane Doe | jane@example.com | (555) 123-4567\n" +
		"LinkedIn.com/in/jane github.com/jane\nEducation\nWork History\nProjects\nTechnologies\nCertificates")

	assert.Equal(t, SectionFlags{
		HasEmail:          true,
		HasPhone:          true,
		HasLinkedIn:       true,
		HasGitHub:         true,
		HasEducation:      true,
		HasExperience:     true,
		HasProjects:       true,
		HasSkills:         true,
		HasCertifications: true,
	}, flags)
}

func TestLoadLexiconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := "skills:\n  - Go\n  - Kubernetes\nbuzzwords:\n  - ninja\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	lex, err := LoadLexiconFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "kubernetes"}, lex.Skills)
	assert.Equal(t, []string{"ninja"}, lex.Buzzwords)
	assert.Len(t, lex.StrongVerbs, 20)

	_, err = LoadLexiconFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
