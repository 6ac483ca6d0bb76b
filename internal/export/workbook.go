package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docboard/internal/domain"
)

// reviewColumns defines the review queue sheet header row.
var reviewColumns = []string{
	"File Name",
	"Document Type",
	"Uploaded At",
	"Confidence",
	"Confidence Band",
	"State",
	"Reviewed At",
	"Extracted Fields",
}

// NewDashboardWorkbook builds an xlsx workbook for a dashboard project,
// one sheet per dashboard item with its data points as Label/Value rows.
func NewDashboardWorkbook(project *domain.DashboardProject) (*excelize.File, error) {
	f := excelize.NewFile()

	for i := range project.Items {
		item := &project.Items[i]
		sheet := sheetName(item.Name, i)

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("creating sheet %q: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Label", "Value"}); err != nil {
			return nil, fmt.Errorf("writing header for %q: %w", sheet, err)
		}
		for j, dp := range item.Data {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, fmt.Errorf("resolving cell: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &[]interface{}{dp.Label, dp.Value}); err != nil {
				return nil, fmt.Errorf("writing row for %q: %w", sheet, err)
			}
		}
	}
	return f, nil
}

// NewReviewQueueWorkbook builds an xlsx workbook listing review documents on
// a single sheet, one row per document.
func NewReviewQueueWorkbook(docs []domain.ReviewDocument) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Review Queue"

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(reviewColumns))
	for i, c := range reviewColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i := range docs {
		doc := &docs[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("resolving cell: %w", err)
		}
		row := []interface{}{
			doc.FileName,
			doc.DocumentType,
			formatTime(&doc.UploadedAt),
			doc.Confidence,
			string(domain.BandFor(doc.Confidence)),
			string(doc.State),
			formatTime(doc.ReviewedAt),
			len(doc.ExtractedData),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return f, nil
}

// Excel limits sheet names to 31 chars and forbids []:*?/\ characters.
var badSheetChars = regexp.MustCompile(`[\[\]:*?/\\]+`)

func sheetName(name string, idx int) string {
	s := badSheetChars.ReplaceAllString(strings.TrimSpace(name), " ")
	if s == "" {
		s = fmt.Sprintf("Sheet%d", idx+1)
	}
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a project name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
