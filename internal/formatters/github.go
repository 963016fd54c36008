package formatters

import (
	"fmt"
	"strings"

	"hireup/internal/github"
)

func asProfile(data any) (github.ProfileScore, error) {
	switch v := data.(type) {
	case github.ProfileScore:
		return v, nil
	case *github.ProfileScore:
		return *v, nil
	default:
		return github.ProfileScore{}, fmt.Errorf("expected ProfileScore, got %T", data)
	}
}

// ProfileTextFormatter renders a GitHub profile score as plain text
type ProfileTextFormatter struct{}

func (f *ProfileTextFormatter) Format(data any) (string, error) {
	result, err := asProfile(data)
	if err != nil {
		return "", err
	}

	p := result.Profile
	var out strings.Builder
	fmt.Fprintf(&out, "=== GITHUB PROFILE: %s ===\n\n", p.Login)
	if p.Name != "" {
		fmt.Fprintf(&out, "Name: %s\n", p.Name)
	}
	fmt.Fprintf(&out, "Score: %d/100\n", result.Score)
	fmt.Fprintf(&out, "Public repos: %d\n", p.PublicRepos)
	fmt.Fprintf(&out, "Followers: %d\n", p.Followers)
	fmt.Fprintf(&out, "Total stars: %d\n", result.TotalStars)
	fmt.Fprintf(&out, "Languages: %s\n", listOrNone(result.Languages))
	fmt.Fprintf(&out, "Recent pushes: %d\n", result.PushEvents)

	if len(result.Repos) > 0 {
		out.WriteString("\n=== REPOSITORIES ===\n")
		for _, r := range result.Repos {
			lang := r.Language
			if lang == "" {
				lang = "-"
			}
			fmt.Fprintf(&out, "%-30s %-12s ★%d  %s\n", r.Name, lang, r.Stars, r.Description)
		}
	}

	return out.String(), nil
}

func (f *ProfileTextFormatter) SupportedType() string {
	return "ProfileScore"
}

// ProfileMarkdownFormatter renders a GitHub profile score as markdown
type ProfileMarkdownFormatter struct{}

func (f *ProfileMarkdownFormatter) Format(data any) (string, error) {
	result, err := asProfile(data)
	if err != nil {
		return "", err
	}

	p := result.Profile
	var out strings.Builder
	fmt.Fprintf(&out, "# GitHub Profile: %s\n\n", p.Login)
	fmt.Fprintf(&out, "**Score:** %d/100\n\n", result.Score)
	fmt.Fprintf(&out, "- **Public repos:** %d\n", p.PublicRepos)
	fmt.Fprintf(&out, "- **Followers:** %d\n", p.Followers)
	fmt.Fprintf(&out, "- **Total stars:** %d\n", result.TotalStars)
	fmt.Fprintf(&out, "- **Languages:** %s\n", listOrNone(result.Languages))
	fmt.Fprintf(&out, "- **Recent pushes:** %d\n\n", result.PushEvents)

	if len(result.Repos) > 0 {
		out.WriteString("## Repositories\n\n")
		out.WriteString("| Name | Language | Stars | Description |\n|---|---|---|---|\n")
		for _, r := range result.Repos {
			fmt.Fprintf(&out, "| [%s](%s) | %s | %d | %s |\n", r.Name, r.URL, r.Language, r.Stars, r.Description)
		}
	}

	return out.String(), nil
}

func (f *ProfileMarkdownFormatter) SupportedType() string {
	return "ProfileScore"
}
