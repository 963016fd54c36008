package analysis

import "strings"

const (
	minStrongVerbs    = 3
	maxWeakVerbs      = 3
	minTechnicalSkill = 8
)

// BuildChecklist evaluates the fixed ATS checklist, always fourteen items in
// the same order.
func BuildChecklist(s Signals) []ChecklistItem {
	return []ChecklistItem{
		{Name: "Email Address", Passed: s.Sections.HasEmail, Category: CategoryContact},
		{Name: "Phone Number", Passed: s.Sections.HasPhone, Category: CategoryContact},
		{Name: "LinkedIn URL", Passed: s.Sections.HasLinkedIn, Category: CategoryContact},
		{Name: "Education Section", Passed: s.Sections.HasEducation, Category: CategorySections},
		{Name: "Experience Section", Passed: s.Sections.HasExperience, Category: CategorySections},
		{Name: "Projects Section", Passed: s.Sections.HasProjects, Category: CategorySections},
		{Name: "Skills Section", Passed: s.Sections.HasSkills, Category: CategorySections},
		{Name: "GitHub Profile", Passed: s.Sections.HasGitHub, Category: CategorySections},
		{Name: "Quantified Achievements", Passed: s.HasQuantified, Category: CategoryContent},
		// The label says 3+ but the check has always required more than three.
		{Name: "Strong Action Verbs (3+)", Passed: s.Verbs.StrongCount > minStrongVerbs, Category: CategoryContent},
		{Name: "No Weak Verbs", Passed: s.Verbs.WeakCount < maxWeakVerbs, Category: CategoryContent},
		{Name: "No Buzzwords", Passed: s.Buzzwords.Count == 0, Category: CategoryContent},
		{Name: "Certifications", Passed: s.Sections.HasCertifications, Category: CategoryContent},
		{Name: "Technical Skills (8+)", Passed: len(s.Skills) >= minTechnicalSkill, Category: CategorySkills},
	}
}

// ATSScore is the rounded percentage of passed checklist items.
func ATSScore(items []ChecklistItem) int {
	return percent(countPassed(items), len(items))
}

func countPassed(items []ChecklistItem) int {
	passed := 0
	for _, item := range items {
		if item.Passed {
			passed++
		}
	}
	return passed
}

// BuildSuggestions returns at most five improvement tips, highest impact
// first.
func BuildSuggestions(s Signals, missingSkills []string) []Suggestion {
	suggestions := make([]Suggestion, 0, 4)

	if len(missingSkills) > 0 {
		suggestions = append(suggestions, Suggestion{
			Category: "Skills Gap",
			Priority: PriorityHigh,
			Message:  "Add these missing skills: " + strings.Join(truncate(missingSkills, maxMissingInTip), ", "),
			Action:   "Take free courses on Coursera or YouTube",
		})
	}

	if !s.Sections.HasLinkedIn {
		suggestions = append(suggestions, Suggestion{
			Category: "Contact",
			Priority: PriorityHigh,
			Message:  "Add your LinkedIn profile URL",
			Action:   "Create a LinkedIn profile and add the link to your resume",
		})
	}

	if !s.Sections.HasGitHub {
		suggestions = append(suggestions, Suggestion{
			Category: "Portfolio",
			Priority: PriorityMedium,
			Message:  "Add your GitHub profile to showcase projects",
			Action:   "Create a GitHub account and add your repositories",
		})
	}

	if !s.HasQuantified {
		suggestions = append(suggestions, Suggestion{
			Category: "Achievements",
			Priority: PriorityHigh,
			Message:  "Add numbers and metrics to demonstrate impact",
			Action:   `Use format: "Increased X by Y%" or "Reduced Z by N hours"`,
		})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
