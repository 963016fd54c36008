package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDashboard(t *testing.T) {
	day := time.Date(2026, 1, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		entries  []ScanEntry
		expected Summary
	}{
		{
			name:     "no scans",
			entries:  nil,
			expected: Summary{},
		},
		{
			name:     "single scan has no improvement",
			entries:  []ScanEntry{{Score: 64, Date: day}},
			expected: Summary{TotalScans: 1, AverageScore: 64, HighestScore: 64},
		},
		{
			name: "improvement over first scan",
			entries: []ScanEntry{
				{Score: 50, Date: day, Skills: []string{"go", "sql"}},
				{Score: 57, Date: day, Skills: []string{"go"}, MatchScore: 40},
				{Score: 75, Date: day, Skills: []string{"docker"}},
			},
			expected: Summary{TotalScans: 3, AverageScore: 61, HighestScore: 75, ImprovementRate: 50, SkillsCount: 3, MatchesCount: 1},
		},
		{
			name: "decline rounds half up",
			entries: []ScanEntry{
				{Score: 40, Date: day},
				{Score: 39, Date: day},
			},
			expected: Summary{TotalScans: 2, AverageScore: 40, HighestScore: 40, ImprovementRate: -2},
		},
		{
			name: "zero first score",
			entries: []ScanEntry{
				{Score: 0, Date: day},
				{Score: 50, Date: day},
			},
			expected: Summary{TotalScans: 2, AverageScore: 25, HighestScore: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDashboard(tt.entries)
			assert.Equal(t, tt.expected, got.Stats)
			assert.Len(t, got.History, len(tt.entries))
		})
	}
}

func TestComputeDashboardHistoryPoints(t *testing.T) {
	got := ComputeDashboard([]ScanEntry{{
		Date:              time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Score:             71,
		TotalChecksPassed: 10,
		WordCount:         420,
		MatchScore:        33,
	}})

	assert.Equal(t, []HistoryPoint{{
		Date:       "2026-02-03",
		Score:      71,
		Checks:     10,
		WordCount:  420,
		MatchScore: 33,
		FileName:   UnknownFileName,
	}}, got.History)
}

func TestNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []ScanEntry{
		{FileName: "old", Date: base},
		{FileName: "new", Date: base.Add(48 * time.Hour)},
		{FileName: "mid", Date: base.Add(24 * time.Hour)},
	}

	sorted := NewestFirst(entries)
	assert.Equal(t, "new", sorted[0].FileName)
	assert.Equal(t, "mid", sorted[1].FileName)
	assert.Equal(t, "old", sorted[2].FileName)
	assert.Equal(t, "old", entries[0].FileName)
}
