package formatters

import (
	"fmt"
	"strings"

	"hireup/internal/store"
)

func asDashboard(data any) (store.DashboardStats, error) {
	switch v := data.(type) {
	case store.DashboardStats:
		return v, nil
	case *store.DashboardStats:
		return *v, nil
	default:
		return store.DashboardStats{}, fmt.Errorf("expected DashboardStats, got %T", data)
	}
}

// DashboardTextFormatter renders dashboard stats as plain text
type DashboardTextFormatter struct{}

func (f *DashboardTextFormatter) Format(data any) (string, error) {
	result, err := asDashboard(data)
	if err != nil {
		return "", err
	}

	s := result.Stats
	var out strings.Builder
	out.WriteString("=== DASHBOARD ===\n\n")
	fmt.Fprintf(&out, "Total scans: %d\n", s.TotalScans)
	fmt.Fprintf(&out, "Average score: %d\n", s.AverageScore)
	fmt.Fprintf(&out, "Highest score: %d\n", s.HighestScore)
	fmt.Fprintf(&out, "Improvement: %d%%\n", s.ImprovementRate)
	fmt.Fprintf(&out, "Skills seen: %d\n", s.SkillsCount)
	fmt.Fprintf(&out, "Job matches: %d\n", s.MatchesCount)

	if len(result.History) > 0 {
		out.WriteString("\n=== HISTORY ===\n")
		for _, h := range result.History {
			fmt.Fprintf(&out, "%s  %3d  match %3d  %s\n", h.Date, h.Score, h.MatchScore, h.FileName)
		}
	}
	return out.String(), nil
}

func (f *DashboardTextFormatter) SupportedType() string {
	return "DashboardStats"
}

// DashboardMarkdownFormatter renders dashboard stats as markdown
type DashboardMarkdownFormatter struct{}

func (f *DashboardMarkdownFormatter) Format(data any) (string, error) {
	result, err := asDashboard(data)
	if err != nil {
		return "", err
	}

	s := result.Stats
	var out strings.Builder
	out.WriteString("# Dashboard\n\n")
	out.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&out, "| Total scans | %d |\n", s.TotalScans)
	fmt.Fprintf(&out, "| Average score | %d |\n", s.AverageScore)
	fmt.Fprintf(&out, "| Highest score | %d |\n", s.HighestScore)
	fmt.Fprintf(&out, "| Improvement | %d%% |\n", s.ImprovementRate)
	fmt.Fprintf(&out, "| Skills seen | %d |\n", s.SkillsCount)
	fmt.Fprintf(&out, "| Job matches | %d |\n\n", s.MatchesCount)

	if len(result.History) > 0 {
		out.WriteString("## History\n\n| Date | File | Score | Checks | Match |\n|---|---|---|---|---|\n")
		for _, h := range result.History {
			fmt.Fprintf(&out, "| %s | %s | %d | %d | %d |\n", h.Date, h.FileName, h.Score, h.Checks, h.MatchScore)
		}
	}
	return out.String(), nil
}

func (f *DashboardMarkdownFormatter) SupportedType() string {
	return "DashboardStats"
}
