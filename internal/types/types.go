package types

import (
	"hireup/internal/analysis"
	"hireup/internal/auth"
	"hireup/internal/store"
)

// MaxSkillsShown caps the skills list in an analysis response.
const MaxSkillsShown = 20

// AnalyzeTextRequest is the body of a plain-text analysis call.
type AnalyzeTextRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription"`
	FileName       string `json:"fileName"`
}

// ScanRequest appends an entry to the caller's history directly.
type ScanRequest struct {
	FileName          string   `json:"fileName"`
	Score             int      `json:"score" validate:"min=0,max=100"`
	TotalChecksPassed int      `json:"totalChecksPassed" validate:"min=0"`
	WordCount         int      `json:"wordCount" validate:"min=0"`
	MatchScore        int      `json:"matchScore" validate:"min=0,max=100"`
	Skills            []string `json:"skills"`
	MissingSkills     []string `json:"missingSkills"`
}

// SaveJobRequest is the body of a save-job call.
type SaveJobRequest struct {
	Title   string `json:"title" validate:"required"`
	Company string `json:"company"`
	URL     string `json:"url" validate:"omitempty,url"`
	Status  string `json:"status"`
}

// JobStatusRequest changes the status of a saved job.
type JobStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GitHubConnectRequest links a GitHub account to the caller.
type GitHubConnectRequest struct {
	Username string `json:"username" validate:"required"`
}

// AnalysisData is the analysis payload returned to clients.
type AnalysisData struct {
	FileName             string                   `json:"fileName"`
	FileSize             int64                    `json:"fileSize"`
	WordCount            int                      `json:"wordCount"`
	Skills               []string                 `json:"skills"`
	ActionVerbs          analysis.VerbSignal      `json:"actionVerbs"`
	HasQuantifiedResults bool                     `json:"hasQuantifiedResults"`
	Buzzwords            analysis.BuzzwordResult  `json:"buzzwords"`
	Sections             analysis.SectionFlags    `json:"sections"`
	MatchScore           int                      `json:"matchScore"`
	MatchedSkills        []string                 `json:"matchedSkills"`
	MissingSkills        []string                 `json:"missingSkills"`
	Checklist            []analysis.ChecklistItem `json:"checklist"`
	TotalChecks          int                      `json:"totalChecks"`
	PassedChecks         int                      `json:"passedChecks"`
	ATSScore             int                      `json:"atsScore"`
	Suggestions          []analysis.Suggestion    `json:"suggestions"`
}

// NewAnalysisData flattens a report for the API.
func NewAnalysisData(fileName string, fileSize int64, r analysis.Report) AnalysisData {
	skills := r.Skills
	if len(skills) > MaxSkillsShown {
		skills = skills[:MaxSkillsShown]
	}
	if skills == nil {
		skills = []string{}
	}

	return AnalysisData{
		FileName:             fileName,
		FileSize:             fileSize,
		WordCount:            r.WordCount,
		Skills:               skills,
		ActionVerbs:          r.Verbs,
		HasQuantifiedResults: r.HasQuantified,
		Buzzwords:            r.Buzzwords,
		Sections:             r.Sections,
		MatchScore:           r.Match.Score,
		MatchedSkills:        r.Match.MatchedSkills,
		MissingSkills:        r.Match.MissingSkills,
		Checklist:            r.Checklist,
		TotalChecks:          r.TotalChecks,
		PassedChecks:         r.PassedChecks,
		ATSScore:             r.ATSScore,
		Suggestions:          r.Suggestions,
	}
}

// ScanEntryFromReport builds the history entry saved after an analysis.
func ScanEntryFromReport(fileName string, r analysis.Report) *store.ScanEntry {
	entry := &store.ScanEntry{
		FileName:          fileName,
		Score:             r.ATSScore,
		TotalChecksPassed: r.PassedChecks,
		WordCount:         r.WordCount,
		MatchScore:        r.Match.Score,
		Skills:            append([]string(nil), r.Skills...),
		MissingSkills:     append([]string(nil), r.Match.MissingSkills...),
	}
	entry.Normalize()
	return entry
}

// DataResponse wraps a payload as {success, data}.
type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    auth.PublicUser `json:"user"`
}

type UserResponse struct {
	Success bool            `json:"success"`
	User    auth.PublicUser `json:"user"`
}

type ScanResponse struct {
	Success bool            `json:"success"`
	Resume  store.ScanEntry `json:"resume"`
}

type ScansResponse struct {
	Success bool              `json:"success"`
	Resumes []store.ScanEntry `json:"resumes"`
}

type JobResponse struct {
	Success bool           `json:"success"`
	Job     store.SavedJob `json:"job"`
}

type GitHubLinkResponse struct {
	Success bool             `json:"success"`
	GitHub  store.GitHubLink `json:"github"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
