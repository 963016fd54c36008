// Package github scores a developer's public GitHub presence from the REST
// API.
package github

import "time"

// Profile is the subset of GET /users/{username} the score needs.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repo is one entry of GET /users/{username}/repos.
type Repo struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        string   `json:"homepage"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	WatchersCount   int      `json:"watchers_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Size            int      `json:"size"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        string   `json:"pushed_at"`
	Private         bool     `json:"private"`
	Fork            bool     `json:"fork"`
	Topics          []string `json:"topics"`
}

// Event is one entry of GET /users/{username}/events.
type Event struct {
	Type string `json:"type"`
}

// RepoSummary is the display shape of a repository.
type RepoSummary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Homepage    string   `json:"homepage"`
	Language    string   `json:"language"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Watchers    int      `json:"watchers"`
	OpenIssues  int      `json:"openIssues"`
	Size        int      `json:"size"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	PushedAt    string   `json:"pushedAt"`
	IsPrivate   bool     `json:"isPrivate"`
	IsFork      bool     `json:"isFork"`
	Topics      []string `json:"topics"`
}

// ProfileScore is the result of a profile lookup.
type ProfileScore struct {
	Profile    Profile       `json:"profile"`
	Score      int           `json:"score"`
	TotalStars int           `json:"totalStars"`
	Languages  []string      `json:"languages"`
	PushEvents int           `json:"pushEvents"`
	Repos      []RepoSummary `json:"repos"`
}
