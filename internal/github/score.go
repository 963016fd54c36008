package github

import (
	"math"
	"time"
)

const year = 365 * 24 * time.Hour

// Score rates a profile from 0 to 100. Each signal is capped: repositories
// at 25, stars at 50, followers at 50, languages at 8, push events at 30 and
// account age at 3 years.
func Score(profile Profile, repos []Repo, events []Event, now time.Time) int {
	score := float64(min(len(repos), 25)) * 2
	score += float64(min(totalStars(repos), 50)) * 0.4
	score += float64(min(profile.Followers, 50)) * 0.3
	score += float64(min(len(languages(repos)), 8)) * 1.5
	score += float64(min(pushEvents(events), 30)) * 0.3

	if !profile.CreatedAt.IsZero() {
		age := float64(now.Sub(profile.CreatedAt)) / float64(year)
		score += math.Min(age, 3) * 3
	}

	rounded := math.Floor(score + 0.5)
	if math.IsNaN(rounded) {
		return 0
	}
	return int(math.Min(math.Max(rounded, 0), 100))
}

func totalStars(repos []Repo) int {
	total := 0
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}

// languages returns the distinct non-empty repository languages in first-seen
// order.
func languages(repos []Repo) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range repos {
		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		out = append(out, r.Language)
	}
	return out
}

func pushEvents(events []Event) int {
	n := 0
	for _, e := range events {
		if e.Type == "PushEvent" {
			n++
		}
	}
	return n
}

// FormatRepos converts API repositories to their display shape.
func FormatRepos(repos []Repo) []RepoSummary {
	out := make([]RepoSummary, 0, len(repos))
	for _, r := range repos {
		description := r.Description
		if description == "" {
			description = "No description"
		}
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		out = append(out, RepoSummary{
			ID:          r.ID,
			Name:        r.Name,
			FullName:    r.FullName,
			Description: description,
			URL:         r.HTMLURL,
			Homepage:    r.Homepage,
			Language:    r.Language,
			Stars:       r.StargazersCount,
			Forks:       r.ForksCount,
			Watchers:    r.WatchersCount,
			OpenIssues:  r.OpenIssuesCount,
			Size:        r.Size,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			PushedAt:    r.PushedAt,
			IsPrivate:   r.Private,
			IsFork:      r.Fork,
			Topics:      topics,
		})
	}
	return out
}
