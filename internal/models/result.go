package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult represents the outcome of analyzing one repository's history
type AnalysisResult struct {
	RunID           string              `json:"run_id"`
	RepositoryPath  string              `json:"repository_path"`
	TotalCommits    int                 `json:"total_commits"`
	FirstCommitDate *time.Time          `json:"first_commit_date"`
	LastCommitDate  *time.Time          `json:"last_commit_date"`
	Contributors    []*ContributorStats `json:"contributors"`
	AnalyzedAt      time.Time           `json:"analyzed_at"`
}

// NewAnalysisResult creates an analysis result with a generated run ID
func NewAnalysisResult(repositoryPath string) *AnalysisResult {
	return &AnalysisResult{
		RunID:          uuid.New().String(),
		RepositoryPath: repositoryPath,
		AnalyzedAt:     time.Now(),
	}
}
