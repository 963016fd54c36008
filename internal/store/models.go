// Package store persists users, scan history and saved jobs.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Default values for saved jobs and history entries.
const (
	DefaultJobStatus = "saved"
	UnknownFileName  = "Unknown"
	MaxStoredSkills  = 15
)

// User is an account. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	GitHub       *GitHubLink `json:"github,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// GitHubLink records the GitHub account a user connected.
type GitHubLink struct {
	Username    string    `json:"username"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// ScanEntry is one analysis saved to a user's history.
type ScanEntry struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"-"`
	FileName          string    `json:"fileName"`
	Date              time.Time `json:"date"`
	Score             int       `json:"score"`
	TotalChecksPassed int       `json:"totalChecksPassed"`
	WordCount         int       `json:"wordCount"`
	MatchScore        int       `json:"matchScore"`
	Skills            []string  `json:"skills"`
	MissingSkills     []string  `json:"missingSkills"`
}

// Normalize caps the skill lists at MaxStoredSkills and fills defaults.
func (e *ScanEntry) Normalize() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	if e.MissingSkills == nil {
		e.MissingSkills = []string{}
	}
	if len(e.Skills) > MaxStoredSkills {
		e.Skills = e.Skills[:MaxStoredSkills]
	}
	if len(e.MissingSkills) > MaxStoredSkills {
		e.MissingSkills = e.MissingSkills[:MaxStoredSkills]
	}
}

// SavedJob is a job posting a user is tracking.
type SavedJob struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"-"`
	Title   string    `json:"title"`
	Company string    `json:"company"`
	URL     string    `json:"url"`
	Status  string    `json:"status"`
	SavedAt time.Time `json:"savedAt"`
}

// HistoryPoint is one chart point on the dashboard.
type HistoryPoint struct {
	Date       string `json:"date"`
	Score      int    `json:"score"`
	Checks     int    `json:"checks"`
	WordCount  int    `json:"wordCount"`
	MatchScore int    `json:"matchScore"`
	FileName   string `json:"fileName"`
}

// Summary aggregates a user's scan history.
type Summary struct {
	TotalScans      int `json:"totalScans"`
	AverageScore    int `json:"averageScore"`
	HighestScore    int `json:"highestScore"`
	ImprovementRate int `json:"improvementRate"`
	SkillsCount     int `json:"skillsCount"`
	MatchesCount    int `json:"matchesCount"`
}

// DashboardStats is the dashboard payload.
type DashboardStats struct {
	History []HistoryPoint `json:"history"`
	Stats   Summary        `json:"stats"`
}
