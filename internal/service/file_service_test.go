package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docboard/internal/config"
	"docboard/internal/domain"
	"docboard/internal/port"
	"docboard/mocks"
)

// fakeFile adapts a bytes.Reader to multipart.File.
type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func ingestInput(filename string, content []byte) *IngestDocumentInput {
	return &IngestDocumentInput{
		File:         fakeFile{bytes.NewReader(content)},
		Header:       &multipart.FileHeader{Filename: filename, Size: int64(len(content))},
		DocumentType: "invoice",
		Confidence:   0.91,
		ExtractedData: []domain.ExtractedField{
			{Name: "total", Value: "1200.00", Confidence: 0.95, Type: "number"},
		},
	}
}

func testS3Config() *config.S3Config {
	return &config.S3Config{Bucket: "docboard-uploads", MaxFileSizeMB: 1, PresignExpiry: 3600}
}

func TestFileService_IngestRegistersPendingDocument(t *testing.T) {
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://s3/docboard-uploads", ETag: "etag"}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReviewDocument")).Return(nil)

	svc := NewFileService(docRepo, storage, testS3Config())
	doc, err := svc.Ingest(context.Background(), ingestInput("invoice-march.pdf", pdfBytes))
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewStatePendingReview, doc.State)
	assert.Equal(t, "invoice-march.pdf", doc.FileName)
	assert.Equal(t, "docboard-uploads", doc.StorageBucket)
	assert.Contains(t, doc.StorageKey, doc.ID.String())
	assert.Len(t, doc.ExtractedData, 1)
}

func TestFileService_IngestRejectsUnsupportedExtension(t *testing.T) {
	svc := NewFileService(new(mocks.MockReviewDocumentRepo), new(mocks.MockObjectStorage), testS3Config())

	_, err := svc.Ingest(context.Background(), ingestInput("macro.docx", pdfBytes))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_IngestRejectsMismatchedContent(t *testing.T) {
	svc := NewFileService(new(mocks.MockReviewDocumentRepo), new(mocks.MockObjectStorage), testS3Config())

	// .pdf extension over plain text fails magic-byte detection.
	_, err := svc.Ingest(context.Background(), ingestInput("fake.pdf", []byte("just some text")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_IngestRejectsOversizedFile(t *testing.T) {
	svc := NewFileService(new(mocks.MockReviewDocumentRepo), new(mocks.MockObjectStorage), testS3Config())

	input := ingestInput("invoice.pdf", pdfBytes)
	input.Header.Size = 2 * 1024 * 1024
	_, err := svc.Ingest(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileService_IngestCleansUpOrphanedObject(t *testing.T) {
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "https://s3/docboard-uploads", ETag: "etag"}, nil)
	storage.On("Delete", mock.Anything, "docboard-uploads", mock.AnythingOfType("string")).Return(nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewFileService(docRepo, storage, testS3Config())
	_, err := svc.Ingest(context.Background(), ingestInput("invoice.pdf", pdfBytes))
	require.Error(t, err)

	storage.AssertCalled(t, "Delete", mock.Anything, "docboard-uploads", mock.AnythingOfType("string"))
}

func TestFileService_Download(t *testing.T) {
	doc := &domain.ReviewDocument{
		ID:            uuid.New(),
		FileName:      "invoice.pdf",
		StorageBucket: "docboard-uploads",
		StorageKey:    "documents/x/invoice.pdf",
	}
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("Download", mock.Anything, doc.StorageBucket, doc.StorageKey).Return(pdfBytes, nil)

	svc := NewFileService(docRepo, storage, testS3Config())
	out, err := svc.Download(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, pdfBytes, out.Data)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "invoice.pdf", out.FileName)
}

func TestFileService_DownloadStorageFailure(t *testing.T) {
	doc := &domain.ReviewDocument{ID: uuid.New(), FileName: "invoice.pdf", StorageBucket: "b", StorageKey: "k"}
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("Download", mock.Anything, "b", "k").Return(nil, assert.AnError)

	svc := NewFileService(docRepo, storage, testS3Config())
	_, err := svc.Download(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestFileService_DeleteRemovesObjectAndQueueEntry(t *testing.T) {
	doc := &domain.ReviewDocument{ID: uuid.New(), StorageBucket: "b", StorageKey: "k"}
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("Delete", mock.Anything, "b", "k").Return(nil)
	docRepo.On("Delete", mock.Anything, doc.ID).Return(nil)

	svc := NewFileService(docRepo, storage, testS3Config())
	require.NoError(t, svc.Delete(context.Background(), doc.ID))

	storage.AssertExpectations(t)
	docRepo.AssertExpectations(t)
}

func TestFileService_DeleteStorageFailureKeepsQueueEntry(t *testing.T) {
	doc := &domain.ReviewDocument{ID: uuid.New(), StorageBucket: "b", StorageKey: "k"}
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("Delete", mock.Anything, "b", "k").Return(assert.AnError)

	svc := NewFileService(docRepo, storage, testS3Config())
	require.Error(t, svc.Delete(context.Background(), doc.ID))

	docRepo.AssertNotCalled(t, "Delete", mock.Anything, doc.ID)
}

func TestFileService_GetDownloadURL(t *testing.T) {
	doc := &domain.ReviewDocument{ID: uuid.New(), StorageBucket: "b", StorageKey: "k"}
	docRepo := new(mocks.MockReviewDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("GetPresignedURL", mock.Anything, "b", "k", int64(3600)).Return("https://signed.example.com/k", nil)

	svc := NewFileService(docRepo, storage, testS3Config())
	url, err := svc.GetDownloadURL(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/k", url)
}
