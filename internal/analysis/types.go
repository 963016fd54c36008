package analysis

// VerbSignal counts strong and weak action verbs. Counts include every
// occurrence; the verb lists hold the first distinct matches for display.
type VerbSignal struct {
	StrongCount int      `json:"strongCount"`
	WeakCount   int      `json:"weakCount"`
	StrongVerbs []string `json:"strongVerbs"`
	WeakVerbs   []string `json:"weakVerbs"`
}

// BuzzwordResult reports cliché phrases found in the text.
type BuzzwordResult struct {
	Count     int      `json:"count"`
	Buzzwords []string `json:"buzzwords"`
}

// SectionFlags records which contact fields and resume sections are present.
type SectionFlags struct {
	HasEmail          bool `json:"hasEmail"`
	HasPhone          bool `json:"hasPhone"`
	HasLinkedIn       bool `json:"hasLinkedIn"`
	HasGitHub         bool `json:"hasGitHub"`
	HasEducation      bool `json:"hasEducation"`
	HasExperience     bool `json:"hasExperience"`
	HasProjects       bool `json:"hasProjects"`
	HasSkills         bool `json:"hasSkills"`
	HasCertifications bool `json:"hasCertifications"`
}

// MatchResult compares resume skills with the skills a job description asks for.
type MatchResult struct {
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// Category groups checklist items.
type Category string

const (
	CategoryContact  Category = "Contact"
	CategorySections Category = "Sections"
	CategoryContent  Category = "Content"
	CategorySkills   Category = "Skills"
)

// ChecklistItem is one pass/fail ATS criterion.
type ChecklistItem struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Category Category `json:"category"`
}

// Priority ranks a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
)

// Suggestion is an improvement tip derived from a failing signal.
type Suggestion struct {
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// Signals is the set of detector outputs the checklist and suggestion
// generators read.
type Signals struct {
	Skills        []string       `json:"skills"`
	Verbs         VerbSignal     `json:"actionVerbs"`
	HasQuantified bool           `json:"hasQuantifiedResults"`
	Buzzwords     BuzzwordResult `json:"buzzwords"`
	Sections      SectionFlags   `json:"sections"`
}

// Report is the full result of analyzing one resume.
type Report struct {
	Signals
	Match        MatchResult     `json:"match"`
	WordCount    int             `json:"wordCount"`
	Checklist    []ChecklistItem `json:"checklist"`
	TotalChecks  int             `json:"totalChecks"`
	PassedChecks int             `json:"passedChecks"`
	ATSScore     int             `json:"atsScore"`
	Suggestions  []Suggestion    `json:"suggestions"`
}
