package analysis

import (
	"regexp"
	"strings"
)

const (
	maxStrongVerbsShown = 8
	maxWeakVerbsShown   = 5
	maxBuzzwordsShown   = 5
)

var quantifiedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\d+\s?percent`),
	regexp.MustCompile(`\d+x`),
	regexp.MustCompile(`\$\s?\d+`),
	regexp.MustCompile(`increased by \d+`),
	regexp.MustCompile(`decreased by \d+`),
	regexp.MustCompile(`reduced by \d+`),
	regexp.MustCompile(`\d+\s?(users|customers|clients|people|employees)`),
	regexp.MustCompile(`\d+\s?(hours|days|weeks|months)`),
	regexp.MustCompile(`\d+\s?(projects|features|products|releases)`),
}

// Email and phone are matched against the raw text; everything else against
// the lower-cased text.
var (
	emailPattern          = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern          = regexp.MustCompile(`[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)
	linkedInPattern       = regexp.MustCompile(`linkedin\.com/in/`)
	gitHubPattern         = regexp.MustCompile(`github\.com/`)
	educationPattern      = regexp.MustCompile(`education|university|college|bachelor|master|b\.tech|m\.tech`)
	experiencePattern     = regexp.MustCompile(`experience|work history|employment|intern`)
	projectsPattern       = regexp.MustCompile(`projects`)
	skillsPattern         = regexp.MustCompile(`skills|technologies|competencies`)
	certificationsPattern = regexp.MustCompile(`certifications|certificates`)
)

var tokenPunctuation = strings.NewReplacer(".", "", ",", "", "!", "", "?", "", ";", "", ":", "")

// matchTerms returns, in vocabulary order, every term that occurs as a
// substring of lower. Matching is deliberately literal: "java" is found
// inside "javascript" and "r" inside almost any word.
func matchTerms(lower string, vocabulary []string) []string {
	found := make([]string, 0)
	if lower == "" {
		return found
	}
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

func (a *Analyzer) extractSkills(lower string) []string {
	return matchTerms(lower, a.lexicon.Skills)
}

func (a *Analyzer) analyzeVerbs(lower string) VerbSignal {
	signal := VerbSignal{
		StrongVerbs: make([]string, 0),
		WeakVerbs:   make([]string, 0),
	}
	seenStrong := make(map[string]struct{})
	seenWeak := make(map[string]struct{})

	for _, token := range strings.Fields(lower) {
		word := tokenPunctuation.Replace(token)
		if _, ok := a.strong[word]; ok {
			signal.StrongCount++
			if _, seen := seenStrong[word]; !seen {
				seenStrong[word] = struct{}{}
				signal.StrongVerbs = append(signal.StrongVerbs, word)
			}
		}
		if _, ok := a.weak[word]; ok {
			signal.WeakCount++
			if _, seen := seenWeak[word]; !seen {
				seenWeak[word] = struct{}{}
				signal.WeakVerbs = append(signal.WeakVerbs, word)
			}
		}
	}

	signal.StrongVerbs = truncate(signal.StrongVerbs, maxStrongVerbsShown)
	signal.WeakVerbs = truncate(signal.WeakVerbs, maxWeakVerbsShown)
	return signal
}

func hasQuantifiedAchievements(lower string) bool {
	for _, pattern := range quantifiedPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func (a *Analyzer) detectBuzzwords(lower string) BuzzwordResult {
	found := matchTerms(lower, a.lexicon.Buzzwords)
	return BuzzwordResult{
		Count:     len(found),
		Buzzwords: truncate(found, maxBuzzwordsShown),
	}
}

func checkSections(raw, lower string) SectionFlags {
	return SectionFlags{
		HasEmail:          emailPattern.MatchString(raw),
		HasPhone:          phonePattern.MatchString(raw),
		HasLinkedIn:       linkedInPattern.MatchString(lower),
		HasGitHub:         gitHubPattern.MatchString(lower),
		HasEducation:      educationPattern.MatchString(lower),
		HasExperience:     experiencePattern.MatchString(lower),
		HasProjects:       projectsPattern.MatchString(lower),
		HasSkills:         skillsPattern.MatchString(lower),
		HasCertifications: certificationsPattern.MatchString(lower),
	}
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
