package store

import (
	"math"
	"slices"
)

const dateLayout = "2006-01-02"

// NewestFirst returns a copy of entries sorted by date, most recent first.
func NewestFirst(entries []ScanEntry) []ScanEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b ScanEntry) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}

// ComputeDashboard builds chart points and summary figures from a history
// in insertion order.
func ComputeDashboard(entries []ScanEntry) DashboardStats {
	history := make([]HistoryPoint, 0, len(entries))
	skills := make(map[string]struct{})
	matches := 0

	for _, e := range entries {
		fileName := e.FileName
		if fileName == "" {
			fileName = UnknownFileName
		}
		history = append(history, HistoryPoint{
			Date:       e.Date.UTC().Format(dateLayout),
			Score:      e.Score,
			Checks:     e.TotalChecksPassed,
			WordCount:  e.WordCount,
			MatchScore: e.MatchScore,
			FileName:   fileName,
		})
		for _, s := range e.Skills {
			skills[s] = struct{}{}
		}
		if e.MatchScore > 0 {
			matches++
		}
	}

	summary := Summary{
		TotalScans:   len(history),
		SkillsCount:  len(skills),
		MatchesCount: matches,
	}
	if len(history) == 0 {
		return DashboardStats{History: history, Stats: summary}
	}

	total := 0
	for _, point := range history {
		total += point.Score
		summary.HighestScore = max(summary.HighestScore, point.Score)
	}
	summary.AverageScore = int(math.Round(float64(total) / float64(len(history))))

	first, last := history[0].Score, history[len(history)-1].Score
	if len(history) > 1 && first > 0 {
		// Half rounds toward positive infinity, so -2.5 becomes -2.
		summary.ImprovementRate = int(math.Floor(float64(last-first)/float64(first)*100 + 0.5))
	}

	return DashboardStats{History: history, Stats: summary}
}
