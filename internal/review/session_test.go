package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
	"docboard/mocks"
)

func pendingDocument() domain.ReviewDocument {
	return domain.ReviewDocument{
		ID:            uuid.New(),
		FileName:      "invoice-march.pdf",
		DocumentType:  "invoice",
		Confidence:    0.91,
		StorageBucket: "docboard-uploads",
		StorageKey:    "documents/x/invoice-march.pdf",
		State:         domain.ReviewStatePendingReview,
		ExtractedData: []domain.ExtractedField{
			{Name: "vendor", Value: "Acme Corp", Confidence: 0.95, Type: "string"},
			{Name: "total", Value: "1200.00", Confidence: 0.80, Type: "number"},
			{Name: "due_date", Value: "2024-04-01", Confidence: 0.60, Type: "date"},
		},
	}
}

func openSession(t *testing.T, doc domain.ReviewDocument) *Session {
	t.Helper()
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, doc.StorageBucket, doc.StorageKey).
		Return([]byte("preview-bytes"), nil)

	s, err := Open(context.Background(), doc, storage)
	require.NoError(t, err)
	return s
}

func TestOpen_NonPendingDocument(t *testing.T) {
	doc := pendingDocument()
	doc.State = domain.ReviewStateApproved

	storage := new(mocks.MockObjectStorage)
	_, err := Open(context.Background(), doc, storage)
	assert.ErrorIs(t, err, domain.ErrDocumentNotReviewable)
	storage.AssertNotCalled(t, "Download")
}

func TestOpen_DownloadFailure(t *testing.T) {
	doc := pendingDocument()
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, doc.StorageBucket, doc.StorageKey).
		Return(nil, assert.AnError)

	_, err := Open(context.Background(), doc, storage)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestSession_Bands(t *testing.T) {
	s := openSession(t, pendingDocument())

	bands := s.Bands()
	assert.Equal(t, domain.BandHigh, bands["vendor"])
	assert.Equal(t, domain.BandMedium, bands["total"])
	assert.Equal(t, domain.BandLow, bands["due_date"])
}

func TestBandFor_Boundaries(t *testing.T) {
	assert.Equal(t, domain.BandHigh, domain.BandFor(0.90))
	assert.Equal(t, domain.BandMedium, domain.BandFor(0.89))
	assert.Equal(t, domain.BandMedium, domain.BandFor(0.75))
	assert.Equal(t, domain.BandLow, domain.BandFor(0.74))
}

func TestSession_LowConfidenceWarnings(t *testing.T) {
	s := openSession(t, pendingDocument())

	warnings := s.LowConfidenceWarnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "due_date")
}

func TestSession_EditPreservesConfidence(t *testing.T) {
	s := openSession(t, pendingDocument())

	require.NoError(t, s.Edit("total", "1250.00"))

	fields := s.Fields()
	var total domain.ExtractedField
	for _, f := range fields {
		if f.Name == "total" {
			total = f
		}
	}
	assert.Equal(t, "1250.00", total.Value)
	assert.Equal(t, 0.80, total.Confidence)
	assert.Equal(t, "number", total.Type)
}

func TestSession_EditUnknownField(t *testing.T) {
	s := openSession(t, pendingDocument())
	assert.ErrorIs(t, s.Edit("missing", "x"), domain.ErrUnknownField)
}

func TestSession_EditDoesNotMutateSourceDocument(t *testing.T) {
	doc := pendingDocument()
	s := openSession(t, doc)

	require.NoError(t, s.Edit("vendor", "Globex"))
	assert.Equal(t, "Acme Corp", doc.ExtractedData[0].Value)
}

func TestSession_ApproveReturnsEditedFields(t *testing.T) {
	s := openSession(t, pendingDocument())
	require.NoError(t, s.Edit("total", "1250.00"))

	final, err := s.Approve()
	require.NoError(t, err)
	require.Len(t, final, 3)
	assert.Equal(t, "1250.00", final[1].Value)

	// Terminal: the preview is released and further edits fail.
	assert.Nil(t, s.Preview().Bytes())
	assert.ErrorIs(t, s.Edit("total", "999"), domain.ErrReviewClosed)
	_, err = s.Approve()
	assert.ErrorIs(t, err, domain.ErrReviewClosed)
}

func TestSession_RejectIsTerminal(t *testing.T) {
	s := openSession(t, pendingDocument())

	require.NoError(t, s.Reject())
	assert.Nil(t, s.Preview().Bytes())
	assert.ErrorIs(t, s.Reject(), domain.ErrReviewClosed)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := openSession(t, pendingDocument())

	s.Close()
	s.Close()
	assert.Nil(t, s.Preview().Bytes())

	// Close after approve is also safe.
	s2 := openSession(t, pendingDocument())
	_, err := s2.Approve()
	require.NoError(t, err)
	s2.Close()
}

func TestPreview_ReleaseIdempotent(t *testing.T) {
	p := &Preview{data: []byte("bytes")}
	assert.Equal(t, []byte("bytes"), p.Bytes())

	p.Release()
	p.Release()
	assert.Nil(t, p.Bytes())
}
