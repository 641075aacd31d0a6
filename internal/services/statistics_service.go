package services

import (
	"runtime"
	"sort"
	"strings"

	"github.com/alimgiray/codestats/internal/models"
	"golang.org/x/sync/errgroup"
)

// LanguageLookup resolves file paths to language names using a bare
// filename table and an extension table, both supplied by configuration.
type LanguageLookup struct {
	Filenames  map[string]string
	Extensions map[string]string
}

// LanguageFor returns the language for a file path. The bare filename is
// checked first (case-insensitive), then the extension after the last dot.
// Everything else is "Unknown".
func (l *LanguageLookup) LanguageFor(path string) string {
	filename := strings.ToLower(path)
	if idx := strings.LastIndex(filename, "/"); idx >= 0 {
		filename = filename[idx+1:]
	}
	if language, ok := l.Filenames[filename]; ok {
		return language
	}

	lastDot := strings.LastIndex(path, ".")
	if lastDot == -1 {
		return "Unknown"
	}

	extension := strings.ToLower(path[lastDot+1:])
	// A dot inside a directory name can leave a path separator in the
	// "extension"; such paths have no real extension.
	if strings.Contains(extension, "/") {
		return "Unknown"
	}
	if language, ok := l.Extensions[extension]; ok {
		return language
	}

	return "Unknown"
}

// ClassifyPath assigns a file path to a line bucket. Test patterns take
// precedence over production patterns; a path matching neither goes to
// the other bucket. Matching is case-insensitive substring containment.
func ClassifyPath(path string, productionPatterns, testPatterns []string) models.LineBucket {
	lowerPath := strings.ToLower(path)

	for _, pattern := range testPatterns {
		if strings.Contains(lowerPath, strings.ToLower(pattern)) {
			return models.LineBucketTest
		}
	}
	for _, pattern := range productionPatterns {
		if strings.Contains(lowerPath, strings.ToLower(pattern)) {
			return models.LineBucketProduction
		}
	}

	return models.LineBucketOther
}

// StatisticsService aggregates parsed commits into per-contributor
// statistics.
type StatisticsService struct {
	identityService *IdentityService
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(identityService *IdentityService) *StatisticsService {
	return &StatisticsService{
		identityService: identityService,
	}
}

// Aggregate turns commits and resolved identities into one statistics
// record per contributor, sorted by commit count descending with ties
// broken by name ascending. Empty commit input yields an empty slice.
// When no identities are supplied, one is synthesized per raw email.
func (s *StatisticsService) Aggregate(
	commits []*models.Commit,
	identities map[string]*models.ContributorIdentity,
	lookup *LanguageLookup,
	productionPatterns, testPatterns []string,
) []*models.ContributorStats {
	if len(commits) == 0 {
		return []*models.ContributorStats{}
	}

	if len(identities) == 0 {
		identities = s.identityService.ResolveIdentities(commits, nil)
	}

	emailToCanonical := make(map[string]string)
	for _, identity := range identities {
		for _, email := range identity.AllEmails {
			emailToCanonical[email] = identity.PrimaryEmail
		}
	}

	grouped := make(map[string][]*models.Commit)
	for _, commit := range commits {
		canonical, ok := emailToCanonical[commit.AuthorEmail]
		if !ok {
			canonical = commit.AuthorEmail
		}
		grouped[canonical] = append(grouped[canonical], commit)
	}

	canonicals := make([]string, 0, len(grouped))
	for canonical := range grouped {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	// Per-contributor aggregation is independent, so it fans out across
	// identity groups. Each goroutine owns one result slot; the sort below
	// stays single-threaded to keep the final order total.
	allStats := make([]*models.ContributorStats, len(canonicals))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, canonical := range canonicals {
		g.Go(func() error {
			group := grouped[canonical]
			identity, ok := identities[canonical]
			if !ok {
				identity = s.defaultIdentity(canonical, group)
			}
			allStats[i] = s.aggregateContributor(identity, group, lookup, productionPatterns, testPatterns)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(allStats, func(i, j int) bool {
		if allStats[i].CommitCount != allStats[j].CommitCount {
			return allStats[i].CommitCount > allStats[j].CommitCount
		}
		return allStats[i].Name < allStats[j].Name
	})

	return allStats
}

// aggregateContributor sums one identity group's commits into a
// ContributorStats record.
func (s *StatisticsService) aggregateContributor(
	identity *models.ContributorIdentity,
	commits []*models.Commit,
	lookup *LanguageLookup,
	productionPatterns, testPatterns []string,
) *models.ContributorStats {
	stats := &models.ContributorStats{
		Name:            identity.CanonicalName,
		PrimaryEmail:    identity.PrimaryEmail,
		AllEmails:       identity.AllEmails,
		LanguageStats:   make(map[string]*models.LanguageStats),
		ProductionLines: make(map[string]int),
		TestLines:       make(map[string]int),
		OtherLines:      make(map[string]int),
	}

	for _, commit := range commits {
		stats.CommitCount++
		stats.FilesChanged += commit.FilesChangedCount()
		stats.Insertions += commit.Insertions
		stats.Deletions += commit.Deletions

		for _, fc := range commit.FileChanges {
			language := lookup.LanguageFor(fc.Path)

			ls, ok := stats.LanguageStats[language]
			if !ok {
				ls = &models.LanguageStats{Language: language}
				stats.LanguageStats[language] = ls
			}
			ls.Insertions += fc.Insertions
			ls.Deletions += fc.Deletions
			ls.LinesChanged += fc.TotalLinesChanged()
			ls.FilesChanged++

			switch ClassifyPath(fc.Path, productionPatterns, testPatterns) {
			case models.LineBucketTest:
				stats.TestLines[language] += fc.NetLines()
			case models.LineBucketProduction:
				stats.ProductionLines[language] += fc.NetLines()
			default:
				stats.OtherLines[language] += fc.NetLines()
			}
		}
	}

	return stats
}

// defaultIdentity covers commit groups whose email has no resolved
// identity, using the same longest-name rule as the identity service.
func (s *StatisticsService) defaultIdentity(email string, commits []*models.Commit) *models.ContributorIdentity {
	nameSet := make(map[string]bool)
	for _, commit := range commits {
		nameSet[commit.AuthorName] = true
	}
	allNames := sortedKeys(nameSet)

	return &models.ContributorIdentity{
		CanonicalName: canonicalName(allNames),
		PrimaryEmail:  email,
		AllEmails:     []string{email},
		AllNames:      allNames,
	}
}
