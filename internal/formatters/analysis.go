package formatters

import (
	"fmt"
	"strings"

	"hireup/internal/types"
)

func asAnalysis(data any) (types.AnalysisData, error) {
	switch v := data.(type) {
	case types.AnalysisData:
		return v, nil
	case *types.AnalysisData:
		return *v, nil
	default:
		return types.AnalysisData{}, fmt.Errorf("expected AnalysisData, got %T", data)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// AnalysisTextFormatter renders a resume analysis as plain text
type AnalysisTextFormatter struct{}

func (f *AnalysisTextFormatter) Format(data any) (string, error) {
	result, err := asAnalysis(data)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "=== ATS REPORT: %s ===\n\n", result.FileName)
	fmt.Fprintf(&out, "ATS Score: %d/100 (%d of %d checks passed)\n", result.ATSScore, result.PassedChecks, result.TotalChecks)
	fmt.Fprintf(&out, "Word count: %d\n", result.WordCount)
	if result.MatchScore > 0 || len(result.MissingSkills) > 0 {
		fmt.Fprintf(&out, "Job match: %d%%\n", result.MatchScore)
	}
	out.WriteString("\n")

	out.WriteString("=== CHECKLIST ===\n")
	for _, item := range result.Checklist {
		mark := "FAIL"
		if item.Passed {
			mark = "PASS"
		}
		fmt.Fprintf(&out, "[%s] %-10s %s\n", mark, item.Category, item.Name)
	}
	out.WriteString("\n")

	out.WriteString("=== SIGNALS ===\n")
	fmt.Fprintf(&out, "Skills: %s\n", listOrNone(result.Skills))
	fmt.Fprintf(&out, "Strong verbs (%d): %s\n", result.ActionVerbs.StrongCount, listOrNone(result.ActionVerbs.StrongVerbs))
	fmt.Fprintf(&out, "Weak verbs (%d): %s\n", result.ActionVerbs.WeakCount, listOrNone(result.ActionVerbs.WeakVerbs))
	fmt.Fprintf(&out, "Quantified results: %s\n", yesNo(result.HasQuantifiedResults))
	fmt.Fprintf(&out, "Buzzwords (%d): %s\n", result.Buzzwords.Count, listOrNone(result.Buzzwords.Buzzwords))
	if len(result.MatchedSkills) > 0 || len(result.MissingSkills) > 0 {
		fmt.Fprintf(&out, "Matched skills: %s\n", listOrNone(result.MatchedSkills))
		fmt.Fprintf(&out, "Missing skills: %s\n", listOrNone(result.MissingSkills))
	}

	if len(result.Suggestions) > 0 {
		out.WriteString("\n=== SUGGESTIONS ===\n")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&out, "%d. [%s] %s: %s\n   %s\n", i+1, s.Priority, s.Category, s.Message, s.Action)
		}
	}

	return out.String(), nil
}

func (f *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisData"
}

// AnalysisMarkdownFormatter renders a resume analysis as markdown
type AnalysisMarkdownFormatter struct{}

func (f *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, err := asAnalysis(data)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "# ATS Report: %s\n\n", result.FileName)
	fmt.Fprintf(&out, "**ATS Score:** %d/100 (%d of %d checks passed)\n\n", result.ATSScore, result.PassedChecks, result.TotalChecks)
	fmt.Fprintf(&out, "**Word count:** %d\n\n", result.WordCount)

	out.WriteString("## Checklist\n\n")
	out.WriteString("| Check | Category | Result |\n|---|---|---|\n")
	for _, item := range result.Checklist {
		mark := "❌"
		if item.Passed {
			mark = "✅"
		}
		fmt.Fprintf(&out, "| %s | %s | %s |\n", item.Name, item.Category, mark)
	}
	out.WriteString("\n")

	out.WriteString("## Signals\n\n")
	fmt.Fprintf(&out, "- **Skills:** %s\n", listOrNone(result.Skills))
	fmt.Fprintf(&out, "- **Strong verbs (%d):** %s\n", result.ActionVerbs.StrongCount, listOrNone(result.ActionVerbs.StrongVerbs))
	fmt.Fprintf(&out, "- **Weak verbs (%d):** %s\n", result.ActionVerbs.WeakCount, listOrNone(result.ActionVerbs.WeakVerbs))
	fmt.Fprintf(&out, "- **Quantified results:** %s\n", yesNo(result.HasQuantifiedResults))
	fmt.Fprintf(&out, "- **Buzzwords (%d):** %s\n\n", result.Buzzwords.Count, listOrNone(result.Buzzwords.Buzzwords))

	if len(result.MatchedSkills) > 0 || len(result.MissingSkills) > 0 {
		fmt.Fprintf(&out, "## Job Match: %d%%\n\n", result.MatchScore)
		fmt.Fprintf(&out, "- **Matched:** %s\n", listOrNone(result.MatchedSkills))
		fmt.Fprintf(&out, "- **Missing:** %s\n\n", listOrNone(result.MissingSkills))
	}

	if len(result.Suggestions) > 0 {
		out.WriteString("## Suggestions\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&out, "### %s (%s)\n\n%s\n\n*%s*\n\n", s.Category, s.Priority, s.Message, s.Action)
		}
	}

	return out.String(), nil
}

func (f *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisData"
}
