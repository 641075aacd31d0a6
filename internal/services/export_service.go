package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alimgiray/codestats/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders an analysis result into the supported output
// formats: plain text, JSON, and an Excel workbook.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// FormatText renders a human-readable report of the analysis result
func (s *ExportService) FormatText(result *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s\n", result.RepositoryPath)
	fmt.Fprintf(&b, "Total commits: %d\n", result.TotalCommits)
	if result.FirstCommitDate != nil && result.LastCommitDate != nil {
		fmt.Fprintf(&b, "History: %s .. %s\n",
			result.FirstCommitDate.Format("2006-01-02"),
			result.LastCommitDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Contributors: %d\n", len(result.Contributors))

	for _, contributor := range result.Contributors {
		fmt.Fprintf(&b, "\n%s <%s>\n", contributor.Name, contributor.PrimaryEmail)
		if len(contributor.AllEmails) > 1 {
			fmt.Fprintf(&b, "  also: %s\n", strings.Join(otherEmails(contributor), ", "))
		}
		fmt.Fprintf(&b, "  commits: %d (%.1f%%), files: %d, +%d/-%d\n",
			contributor.CommitCount,
			contributor.CommitPercentage(result.TotalCommits),
			contributor.FilesChanged,
			contributor.Insertions,
			contributor.Deletions)

		for _, language := range sortedLanguages(contributor) {
			ls := contributor.LanguageStats[language]
			fmt.Fprintf(&b, "  %-12s %5d files, +%d/-%d (prod %d, test %d, other %d)\n",
				language,
				ls.FilesChanged,
				ls.Insertions,
				ls.Deletions,
				contributor.ProductionLines[language],
				contributor.TestLines[language],
				contributor.OtherLines[language])
		}
	}

	return b.String()
}

// FormatJSON renders the analysis result as an indented JSON document
func (s *ExportService) FormatJSON(result *models.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// ExportExcel writes the analysis result to an xlsx workbook with one
// sheet of contributor totals and one of per-language breakdowns.
func (s *ExportService) ExportExcel(result *models.AnalysisResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const contributorsSheet = "Contributors"
	if err := f.SetSheetName("Sheet1", contributorsSheet); err != nil {
		return fmt.Errorf("failed to create contributors sheet: %w", err)
	}

	headers := []string{"Name", "Primary Email", "Commits", "Files Changed", "Insertions", "Deletions", "Net Lines"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(contributorsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, contributor := range result.Contributors {
		values := []interface{}{
			contributor.Name,
			contributor.PrimaryEmail,
			contributor.CommitCount,
			contributor.FilesChanged,
			contributor.Insertions,
			contributor.Deletions,
			contributor.NetLines(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(contributorsSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write contributor row: %w", err)
			}
		}
	}

	const languagesSheet = "Languages"
	if _, err := f.NewSheet(languagesSheet); err != nil {
		return fmt.Errorf("failed to create languages sheet: %w", err)
	}

	languageHeaders := []string{"Contributor", "Language", "Files", "Insertions", "Deletions", "Production Lines", "Test Lines", "Other Lines"}
	for i, header := range languageHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(languagesSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, contributor := range result.Contributors {
		for _, language := range sortedLanguages(contributor) {
			ls := contributor.LanguageStats[language]
			values := []interface{}{
				contributor.Name,
				language,
				ls.FilesChanged,
				ls.Insertions,
				ls.Deletions,
				contributor.ProductionLines[language],
				contributor.TestLines[language],
				contributor.OtherLines[language],
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(languagesSheet, cell, value); err != nil {
					return fmt.Errorf("failed to write language row: %w", err)
				}
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// sortedLanguages lists a contributor's languages in a stable order
func sortedLanguages(contributor *models.ContributorStats) []string {
	languages := make([]string, 0, len(contributor.LanguageStats))
	for language := range contributor.LanguageStats {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// otherEmails lists a contributor's non-primary emails
func otherEmails(contributor *models.ContributorStats) []string {
	emails := make([]string, 0, len(contributor.AllEmails))
	for _, email := range contributor.AllEmails {
		if email != contributor.PrimaryEmail {
			emails = append(emails, email)
		}
	}
	return emails
}
