package services

import (
	"testing"
	"time"

	"github.com/alimgiray/codestats/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalysisService() *AnalysisService {
	identityService := NewIdentityService()
	return NewAnalysisService(
		NewGitLogService(),
		NewCommitParserService(),
		identityService,
		NewStatisticsService(identityService),
	)
}

const pipelineLog = `commit aaa111
Author: Alice <alice@work.com>
Date:   2024-01-10 08:00:00 +0000

    Add auth module

20	0	src/auth.go
8	0	tests/auth_test.go

commit bbb222
Author: Alice Smith <alice@home.com>
Date:   2024-02-20 18:30:00 +0000

    Fix session handling

4	2	src/session.go

commit ccc333
Author: Bob <bob@example.com>
Date:   2024-03-05 11:15:00 +0000

    Update readme

3	1	README.md
`

func TestAnalyzeLogEndToEnd(t *testing.T) {
	service := newTestAnalysisService()

	cfg := config.DefaultAnalysisConfig()
	cfg.Aliases = map[string][]string{
		"alice@work.com": {"alice@home.com"},
	}

	result, err := service.AnalyzeLog(pipelineLog, &AnalysisRequest{
		RepositoryPath: "/tmp/repo",
		Config:         cfg,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "/tmp/repo", result.RepositoryPath)
	assert.Equal(t, 3, result.TotalCommits)

	require.NotNil(t, result.FirstCommitDate)
	require.NotNil(t, result.LastCommitDate)
	assert.Equal(t, time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC), *result.FirstCommitDate)
	assert.Equal(t, time.Date(2024, time.March, 5, 11, 15, 0, 0, time.UTC), *result.LastCommitDate)

	require.Len(t, result.Contributors, 2)

	alice := result.Contributors[0]
	assert.Equal(t, "Alice Smith", alice.Name)
	assert.Equal(t, "alice@work.com", alice.PrimaryEmail)
	assert.Equal(t, 2, alice.CommitCount)
	assert.Equal(t, 32, alice.Insertions)
	assert.Equal(t, 2, alice.Deletions)
	assert.Equal(t, 22, alice.ProductionLines["Go"])
	assert.Equal(t, 8, alice.TestLines["Go"])

	bob := result.Contributors[1]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, 1, bob.CommitCount)
	// README.md matches no directory pattern
	assert.Equal(t, 2, bob.OtherLines["Markdown"])
}

func TestAnalyzeLogExcludeUsers(t *testing.T) {
	service := newTestAnalysisService()

	cfg := config.DefaultAnalysisConfig()
	cfg.ExcludeUsers = []string{"bob@example.com"}

	result, err := service.AnalyzeLog(pipelineLog, &AnalysisRequest{
		RepositoryPath: "/tmp/repo",
		Config:         cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalCommits)
	for _, contributor := range result.Contributors {
		assert.NotEqual(t, "Bob", contributor.Name)
	}
}

func TestAnalyzeLogEmptyInput(t *testing.T) {
	service := newTestAnalysisService()

	result, err := service.AnalyzeLog("", &AnalysisRequest{RepositoryPath: "/tmp/repo"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalCommits)
	assert.Empty(t, result.Contributors)
	assert.Nil(t, result.FirstCommitDate)
	assert.Nil(t, result.LastCommitDate)
}
