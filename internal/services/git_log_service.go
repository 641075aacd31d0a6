package services

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// gitLogFormat reproduces the header layout the parser expects: hash,
// author, date, blank line, indented subject.
const gitLogFormat = "commit %H%nAuthor: %an <%ae>%nDate:   %ad%n%n    %s%n"

// GitLogOptions narrows the commit range passed to git log
type GitLogOptions struct {
	Since *time.Time
	Until *time.Time
}

// GitLogService obtains raw commit log text from a local working copy by
// invoking the git binary.
type GitLogService struct{}

// NewGitLogService creates a new git log service
func NewGitLogService() *GitLogService {
	return &GitLogService{}
}

// ExecuteGitLog runs "git log --numstat" in the given repository and
// returns its raw output. Merge commits are skipped for cleaner stats.
func (s *GitLogService) ExecuteGitLog(repoPath string, opts GitLogOptions) (string, error) {
	if !s.isGitRepository(repoPath) {
		return "", fmt.Errorf("not a git repository: %s", repoPath)
	}

	args := []string{
		"log",
		"--numstat",
		"--pretty=format:" + gitLogFormat,
		"--date=iso",
		"--no-merges",
	}
	if opts.Since != nil {
		args = append(args, "--since="+opts.Since.Format("2006-01-02 15:04:05"))
	}
	if opts.Until != nil {
		args = append(args, "--until="+opts.Until.Format("2006-01-02 15:04:05"))
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run git log: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

// isGitRepository checks whether the path contains a .git directory
func (s *GitLogService) isGitRepository(repoPath string) bool {
	info, err := os.Stat(filepath.Join(repoPath, ".git"))
	return err == nil && info.IsDir()
}
