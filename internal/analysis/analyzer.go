package analysis

import (
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	maxMatchSkillsShown = 15
	maxSuggestions      = 5
	maxMissingInTip     = 5
)

// Analyzer runs the resume heuristics against one Lexicon. It is safe for
// concurrent use.
type Analyzer struct {
	lexicon *Lexicon
	strong  map[string]struct{}
	weak    map[string]struct{}
}

// NewAnalyzer creates an Analyzer. A nil lexicon selects DefaultLexicon.
func NewAnalyzer(lexicon *Lexicon) *Analyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Analyzer{
		lexicon: lexicon,
		strong:  toSet(lexicon.StrongVerbs),
		weak:    toSet(lexicon.WeakVerbs),
	}
}

// Lexicon returns the tables this analyzer matches against.
func (a *Analyzer) Lexicon() *Lexicon {
	return a.lexicon
}

// ExtractSkills returns the vocabulary skills mentioned in text, in
// vocabulary order.
func (a *Analyzer) ExtractSkills(text string) []string {
	return a.extractSkills(strings.ToLower(text))
}

// AnalyzeVerbs counts strong and weak action verbs in text.
func (a *Analyzer) AnalyzeVerbs(text string) VerbSignal {
	return a.analyzeVerbs(strings.ToLower(text))
}

// HasQuantifiedAchievements reports whether text contains at least one
// numeric impact statement.
func (a *Analyzer) HasQuantifiedAchievements(text string) bool {
	return hasQuantifiedAchievements(strings.ToLower(text))
}

// DetectBuzzwords finds cliché phrases in text.
func (a *Analyzer) DetectBuzzwords(text string) BuzzwordResult {
	return a.detectBuzzwords(strings.ToLower(text))
}

// CheckSections detects contact fields and section keywords in text.
func (a *Analyzer) CheckSections(text string) SectionFlags {
	return checkSections(text, strings.ToLower(text))
}

// MatchScore compares resumeSkills with the skills found in jobDescription.
// A job description that names no known skill scores 0.
func (a *Analyzer) MatchScore(resumeSkills []string, jobDescription string) MatchResult {
	result := MatchResult{
		MatchedSkills: make([]string, 0),
		MissingSkills: make([]string, 0),
	}

	jdSkills := a.ExtractSkills(jobDescription)
	if len(jdSkills) == 0 {
		return result
	}

	required := toSet(jdSkills)
	held := toSet(resumeSkills)

	for _, skill := range resumeSkills {
		if _, ok := required[skill]; ok {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		}
	}
	for _, skill := range jdSkills {
		if _, ok := held[skill]; !ok {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}

	result.Score = percent(len(result.MatchedSkills), len(jdSkills))
	result.MatchedSkills = truncate(result.MatchedSkills, maxMatchSkillsShown)
	result.MissingSkills = truncate(result.MissingSkills, maxMatchSkillsShown)
	return result
}

// Analyze runs every detector over resumeText and, when jobDescription is
// long enough to mean something, the job match. The detectors are
// independent and run concurrently.
func (a *Analyzer) Analyze(resumeText, jobDescription string) Report {
	lower := strings.ToLower(resumeText)

	var signals Signals
	var g errgroup.Group
	g.Go(func() error {
		signals.Skills = a.extractSkills(lower)
		return nil
	})
	g.Go(func() error {
		signals.Verbs = a.analyzeVerbs(lower)
		return nil
	})
	g.Go(func() error {
		signals.HasQuantified = hasQuantifiedAchievements(lower)
		return nil
	})
	g.Go(func() error {
		signals.Buzzwords = a.detectBuzzwords(lower)
		return nil
	})
	g.Go(func() error {
		signals.Sections = checkSections(resumeText, lower)
		return nil
	})
	// Detectors never fail.
	_ = g.Wait()

	match := MatchResult{MatchedSkills: make([]string, 0), MissingSkills: make([]string, 0)}
	if HasJobDescription(jobDescription) {
		match = a.MatchScore(signals.Skills, jobDescription)
	}

	checklist := BuildChecklist(signals)
	passed := countPassed(checklist)

	return Report{
		Signals:      signals,
		Match:        match,
		WordCount:    WordCount(resumeText),
		Checklist:    checklist,
		TotalChecks:  len(checklist),
		PassedChecks: passed,
		ATSScore:     ATSScore(checklist),
		Suggestions:  BuildSuggestions(signals, match.MissingSkills),
	}
}

// HasJobDescription reports whether jd is long enough to be matched against.
func HasJobDescription(jd string) bool {
	return len(jd) > 10
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
