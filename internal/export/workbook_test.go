package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
)

func TestNewDashboardWorkbook(t *testing.T) {
	project := &domain.DashboardProject{
		UUID: uuid.New(),
		Name: "Quarterly Overview",
		Items: []domain.DashboardItem{
			{
				UUID:      uuid.New(),
				Name:      "Documents by Type",
				ChartType: domain.ChartBar,
				Data: []domain.DataPoint{
					{Label: "invoice", Value: 42},
					{Label: "mortgage", Value: 7},
				},
			},
			{
				UUID:      uuid.New(),
				Name:      "Approval Rate",
				ChartType: domain.ChartPie,
				Data: []domain.DataPoint{
					{Label: "approved", Value: 30},
				},
			},
		},
	}

	f, err := NewDashboardWorkbook(project)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Documents by Type", "Approval Rate"}, f.GetSheetList())

	rows, err := f.GetRows("Documents by Type")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Label", "Value"}, rows[0])
	assert.Equal(t, "invoice", rows[1][0])
	assert.Equal(t, "42", rows[1][1])
	assert.Equal(t, "mortgage", rows[2][0])
}

func TestNewDashboardWorkbook_BadSheetNames(t *testing.T) {
	project := &domain.DashboardProject{
		UUID: uuid.New(),
		Name: "p",
		Items: []domain.DashboardItem{
			{UUID: uuid.New(), Name: "Q3 [2025] ratio: a/b"},
			{UUID: uuid.New(), Name: ""},
		},
	}

	f, err := NewDashboardWorkbook(project)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	require.Len(t, names, 2)
	assert.Equal(t, "Q3 2025 ratio a b", names[0])
	assert.Equal(t, "Sheet2", names[1])
}

func TestNewReviewQueueWorkbook(t *testing.T) {
	uploaded := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	reviewed := time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC)

	docs := []domain.ReviewDocument{
		{
			ID:           uuid.New(),
			FileName:     "invoice-001.pdf",
			DocumentType: "invoice",
			UploadedAt:   uploaded,
			Confidence:   0.95,
			State:        domain.ReviewStatePendingReview,
			ExtractedData: []domain.ExtractedField{
				{Name: "total", Value: "1200.00", Confidence: 0.97},
				{Name: "vendor", Value: "Acme", Confidence: 0.91},
			},
		},
		{
			ID:           uuid.New(),
			FileName:     "mortgage-007.pdf",
			DocumentType: "mortgage",
			UploadedAt:   uploaded,
			Confidence:   0.60,
			State:        domain.ReviewStateRejected,
			ReviewedAt:   &reviewed,
		},
	}

	f, err := NewReviewQueueWorkbook(docs)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Review Queue")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "File Name", rows[0][0])
	assert.Equal(t, "Extracted Fields", rows[0][7])

	assert.Equal(t, "invoice-001.pdf", rows[1][0])
	assert.Equal(t, "high", rows[1][4])
	assert.Equal(t, "pending_review", rows[1][5])
	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "2", rows[1][7])

	assert.Equal(t, "low", rows[2][4])
	assert.Equal(t, "rejected", rows[2][5])
	assert.Equal(t, "2025-03-02T14:30:00Z", rows[2][6])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Quarterly Overview", "Quarterly_Overview"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"hyphens and underscores preserved", "my-project_2025", "my-project_2025"},
		{"consecutive underscores collapsed", "test___project", "test_project"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("Quarterly Overview")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Quarterly_Overview_"+today+".xlsx", filename)
}
