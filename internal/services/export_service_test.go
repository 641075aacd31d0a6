package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alimgiray/codestats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.AnalysisResult {
	result := models.NewAnalysisResult("/tmp/repo")
	result.TotalCommits = 4
	result.Contributors = []*models.ContributorStats{
		{
			Name:         "Alice Smith",
			PrimaryEmail: "alice@work.com",
			AllEmails:    []string{"alice@home.com", "alice@work.com"},
			CommitCount:  3,
			FilesChanged: 5,
			Insertions:   40,
			Deletions:    10,
			LanguageStats: map[string]*models.LanguageStats{
				"Go": {Language: "Go", LinesChanged: 50, Insertions: 40, Deletions: 10, FilesChanged: 5},
			},
			ProductionLines: map[string]int{"Go": 25},
			TestLines:       map[string]int{"Go": 5},
			OtherLines:      map[string]int{},
		},
		{
			Name:            "Bob",
			PrimaryEmail:    "bob@example.com",
			AllEmails:       []string{"bob@example.com"},
			CommitCount:     1,
			FilesChanged:    1,
			Insertions:      3,
			Deletions:       1,
			LanguageStats:   map[string]*models.LanguageStats{},
			ProductionLines: map[string]int{},
			TestLines:       map[string]int{},
			OtherLines:      map[string]int{},
		},
	}
	return result
}

func TestFormatText(t *testing.T) {
	service := NewExportService()

	out := service.FormatText(sampleResult())

	assert.Contains(t, out, "Repository: /tmp/repo")
	assert.Contains(t, out, "Total commits: 4")
	assert.Contains(t, out, "Alice Smith <alice@work.com>")
	assert.Contains(t, out, "also: alice@home.com")
	assert.Contains(t, out, "commits: 3 (75.0%)")
	assert.Contains(t, out, "Bob <bob@example.com>")
}

func TestFormatJSON(t *testing.T) {
	service := NewExportService()
	result := sampleResult()

	out, err := service.FormatJSON(result)
	require.NoError(t, err)

	var decoded models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, result.RunID, decoded.RunID)
	require.Len(t, decoded.Contributors, 2)
	assert.Equal(t, "Alice Smith", decoded.Contributors[0].Name)
	assert.Equal(t, 25, decoded.Contributors[0].ProductionLines["Go"])
}

func TestExportExcel(t *testing.T) {
	service := NewExportService()

	path := filepath.Join(t.TempDir(), "stats.xlsx")
	require.NoError(t, service.ExportExcel(sampleResult(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
