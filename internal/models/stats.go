package models

// LineBucket classifies a changed file's lines as production code, test
// code, or neither. The classification precedence is test over production
// over other.
type LineBucket string

const (
	LineBucketProduction LineBucket = "production"
	LineBucketTest       LineBucket = "test"
	LineBucketOther      LineBucket = "other"
)

// LanguageStats represents aggregated statistics for one programming language
type LanguageStats struct {
	Language     string `json:"language"`
	LinesChanged int    `json:"lines_changed"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
	FilesChanged int    `json:"files_changed"`
}

// Combine adds another LanguageStats for the same language into this one
func (ls *LanguageStats) Combine(other *LanguageStats) {
	ls.LinesChanged += other.LinesChanged
	ls.Insertions += other.Insertions
	ls.Deletions += other.Deletions
	ls.FilesChanged += other.FilesChanged
}

// NetLines returns insertions - deletions for this language
func (ls *LanguageStats) NetLines() int {
	return ls.Insertions - ls.Deletions
}

// ContributorStats represents aggregated statistics for a single contributor
type ContributorStats struct {
	Name            string                    `json:"name"`
	PrimaryEmail    string                    `json:"primary_email"`
	AllEmails       []string                  `json:"all_emails"`
	CommitCount     int                       `json:"commit_count"`
	FilesChanged    int                       `json:"files_changed"`
	Insertions      int                       `json:"insertions"`
	Deletions       int                       `json:"deletions"`
	LanguageStats   map[string]*LanguageStats `json:"language_stats"`
	ProductionLines map[string]int            `json:"production_lines"`
	TestLines       map[string]int            `json:"test_lines"`
	OtherLines      map[string]int            `json:"other_lines"`
}

// TotalLinesChanged returns insertions + deletions for this contributor
func (cs *ContributorStats) TotalLinesChanged() int {
	return cs.Insertions + cs.Deletions
}

// NetLines returns insertions - deletions for this contributor
func (cs *ContributorStats) NetLines() int {
	return cs.Insertions - cs.Deletions
}

// CommitPercentage returns this contributor's share of the given total commit count
func (cs *ContributorStats) CommitPercentage(totalCommits int) float64 {
	if totalCommits == 0 {
		return 0
	}
	return float64(cs.CommitCount) / float64(totalCommits) * 100
}
