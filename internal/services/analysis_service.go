package services

import (
	"fmt"
	"time"

	"github.com/alimgiray/codestats/internal/models"
	"github.com/alimgiray/codestats/pkg/config"
	"github.com/alimgiray/codestats/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AnalysisRequest describes one repository analysis run
type AnalysisRequest struct {
	RepositoryPath string
	Config         *config.AnalysisConfig
	Days           *int
	Since          *time.Time
	Until          *time.Time
}

// AnalysisService wires the pipeline together: git log text in,
// per-contributor statistics out.
type AnalysisService struct {
	gitLogService     *GitLogService
	parserService     *CommitParserService
	identityService   *IdentityService
	statisticsService *StatisticsService
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	gitLogService *GitLogService,
	parserService *CommitParserService,
	identityService *IdentityService,
	statisticsService *StatisticsService,
) *AnalysisService {
	return &AnalysisService{
		gitLogService:     gitLogService,
		parserService:     parserService,
		identityService:   identityService,
		statisticsService: statisticsService,
	}
}

// AnalyzeRepository obtains the commit log of a local repository and
// aggregates it into contributor statistics.
func (s *AnalysisService) AnalyzeRepository(req *AnalysisRequest) (*models.AnalysisResult, error) {
	rawLog, err := s.gitLogService.ExecuteGitLog(req.RepositoryPath, GitLogOptions{
		Since: req.Since,
		Until: req.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read repository history: %w", err)
	}

	return s.AnalyzeLog(rawLog, req)
}

// AnalyzeLog aggregates already-obtained raw log text into contributor
// statistics. The pipeline itself never fails on malformed log data;
// unparsable blocks are dropped.
func (s *AnalysisService) AnalyzeLog(rawLog string, req *AnalysisRequest) (*models.AnalysisResult, error) {
	cfg := req.Config
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}

	result := models.NewAnalysisResult(req.RepositoryPath)

	commits := s.parserService.ParseCommitsConcurrent(rawLog)
	commits = s.filterCommits(commits, req, cfg)

	identities := s.identityService.ResolveIdentities(commits, cfg.Aliases)

	lookup := &LanguageLookup{
		Filenames:  cfg.Filenames,
		Extensions: cfg.Extensions,
	}
	result.Contributors = s.statisticsService.Aggregate(
		commits, identities, lookup, cfg.ProductionDirectories, cfg.TestDirectories,
	)
	result.TotalCommits = len(commits)
	result.FirstCommitDate, result.LastCommitDate = commitDateRange(commits)

	logger.WithFields(logrus.Fields{
		"run_id":       result.RunID,
		"repository":   req.RepositoryPath,
		"commits":      result.TotalCommits,
		"contributors": len(result.Contributors),
	}).Info("repository analysis finished")

	return result, nil
}

// filterCommits applies the date window and user include/exclude filters
func (s *AnalysisService) filterCommits(commits []*models.Commit, req *AnalysisRequest, cfg *config.AnalysisConfig) []*models.Commit {
	if req.Days != nil {
		cutoff := time.Now().AddDate(0, 0, -*req.Days)
		commits = s.parserService.FilterByDateRange(commits, &cutoff, nil)
	}

	if len(cfg.IncludeUsers) > 0 {
		commits = s.parserService.FilterByAuthors(commits, cfg.IncludeUsers)
	}
	if len(cfg.ExcludeUsers) > 0 {
		excluded := make(map[string]bool, len(cfg.ExcludeUsers))
		for _, email := range cfg.ExcludeUsers {
			excluded[email] = true
		}
		kept := make([]*models.Commit, 0, len(commits))
		for _, commit := range commits {
			if !excluded[commit.AuthorEmail] {
				kept = append(kept, commit)
			}
		}
		commits = kept
	}

	return commits
}

// commitDateRange returns the earliest and latest commit timestamps
func commitDateRange(commits []*models.Commit) (*time.Time, *time.Time) {
	if len(commits) == 0 {
		return nil, nil
	}

	first := commits[0].CommitDate
	last := commits[0].CommitDate
	for _, commit := range commits[1:] {
		if commit.CommitDate.Before(first) {
			first = commit.CommitDate
		}
		if commit.CommitDate.After(last) {
			last = commit.CommitDate
		}
	}

	return &first, &last
}
