package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"hireup/internal/analysis"
	"hireup/internal/store"
)

func manySkills(n int) []string {
	skills := make([]string, n)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%02d", i)
	}
	return skills
}

func TestNewAnalysisDataCapsSkills(t *testing.T) {
	report := analysis.Report{
		Signals:      analysis.Signals{Skills: manySkills(25)},
		Match:        analysis.MatchResult{Score: 40, MatchedSkills: []string{"go"}, MissingSkills: []string{"rust"}},
		WordCount:    200,
		TotalChecks:  14,
		PassedChecks: 7,
		ATSScore:     50,
	}

	data := NewAnalysisData("cv.pdf", 1024, report)
	assert.Len(t, data.Skills, MaxSkillsShown)
	assert.Equal(t, "skill-00", data.Skills[0])
	assert.Equal(t, 40, data.MatchScore)
	assert.Equal(t, []string{"rust"}, data.MissingSkills)
	assert.Equal(t, int64(1024), data.FileSize)
	assert.Equal(t, 50, data.ATSScore)
}

func TestNewAnalysisDataEmptySkills(t *testing.T) {
	data := NewAnalysisData("cv.docx", 0, analysis.Report{})
	assert.NotNil(t, data.Skills)
	assert.Empty(t, data.Skills)
}

func TestScanEntryFromReport(t *testing.T) {
	report := analysis.Report{
		Signals:      analysis.Signals{Skills: manySkills(18)},
		Match:        analysis.MatchResult{Score: 60, MissingSkills: manySkills(16)},
		WordCount:    410,
		PassedChecks: 12,
		ATSScore:     86,
	}

	entry := ScanEntryFromReport("resume.pdf", report)
	assert.Equal(t, "resume.pdf", entry.FileName)
	assert.Equal(t, 86, entry.Score)
	assert.Equal(t, 12, entry.TotalChecksPassed)
	assert.Equal(t, 60, entry.MatchScore)
	assert.Len(t, entry.Skills, store.MaxStoredSkills)
	assert.Len(t, entry.MissingSkills, store.MaxStoredSkills)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.Date.IsZero())

	// The report itself is left intact.
	assert.Len(t, report.Skills, 18)
}
