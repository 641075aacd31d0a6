package models

import "time"

// ChangeType represents the kind of change applied to a file in a commit
type ChangeType string

const (
	ChangeTypeAdded    ChangeType = "added"
	ChangeTypeModified ChangeType = "modified"
	ChangeTypeDeleted  ChangeType = "deleted"
	ChangeTypeRenamed  ChangeType = "renamed"
	ChangeTypeCopied   ChangeType = "copied"
)

// FileChange represents a single file's change within a commit
type FileChange struct {
	Path       string     `json:"path"`
	Insertions int        `json:"insertions"`
	Deletions  int        `json:"deletions"`
	ChangeType ChangeType `json:"change_type"`
}

// TotalLinesChanged returns insertions + deletions for this file
func (fc *FileChange) TotalLinesChanged() int {
	return fc.Insertions + fc.Deletions
}

// NetLines returns insertions - deletions for this file
func (fc *FileChange) NetLines() int {
	return fc.Insertions - fc.Deletions
}

// Commit represents a single parsed git commit
type Commit struct {
	Hash        string        `json:"hash"`
	AuthorName  string        `json:"author_name"`
	AuthorEmail string        `json:"author_email"`
	CommitDate  time.Time     `json:"commit_date"`
	Message     string        `json:"message"`
	FileChanges []*FileChange `json:"file_changes"`
	Insertions  int           `json:"insertions"`
	Deletions   int           `json:"deletions"`
}

// NewCommit creates a commit with totals derived from its file changes
func NewCommit(hash, authorName, authorEmail string, commitDate time.Time, message string, fileChanges []*FileChange) *Commit {
	insertions := 0
	deletions := 0
	for _, fc := range fileChanges {
		insertions += fc.Insertions
		deletions += fc.Deletions
	}

	return &Commit{
		Hash:        hash,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		CommitDate:  commitDate,
		Message:     message,
		FileChanges: fileChanges,
		Insertions:  insertions,
		Deletions:   deletions,
	}
}

// TotalLinesChanged returns insertions + deletions for this commit
func (c *Commit) TotalLinesChanged() int {
	return c.Insertions + c.Deletions
}

// NetLines returns insertions - deletions for this commit
func (c *Commit) NetLines() int {
	return c.Insertions - c.Deletions
}

// FilesChangedCount returns the number of file changes in this commit
func (c *Commit) FilesChangedCount() int {
	return len(c.FileChanges)
}
