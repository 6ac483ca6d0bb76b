package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docboard/internal/config"
	"docboard/internal/domain"
	"docboard/internal/ident"
	"docboard/internal/port"
)

// IngestDocumentInput is the DTO for uploading a document into the review
// pipeline. Extraction happens upstream, so the extracted field set arrives
// with the upload; its shape is frozen from this point on.
type IngestDocumentInput struct {
	File          multipart.File
	Header        *multipart.FileHeader
	DocumentType  string
	Confidence    float64
	ExtractedData []domain.ExtractedField
}

// DownloadOutput carries proxied object bytes plus their content type.
type DownloadOutput struct {
	Data        []byte
	ContentType string
	FileName    string
}

// FileService proxies document bytes between clients and object storage and
// registers uploads in the review queue.
type FileService interface {
	Ingest(ctx context.Context, input *IngestDocumentInput) (*domain.ReviewDocument, error)
	Download(ctx context.Context, documentID uuid.UUID) (*DownloadOutput, error)
	GetDownloadURL(ctx context.Context, documentID uuid.UUID) (string, error)
	Delete(ctx context.Context, documentID uuid.UUID) error
}

type fileService struct {
	docRepo port.ReviewDocumentRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	docRepo port.ReviewDocumentRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) FileService {
	return &fileService{
		docRepo: docRepo,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *fileService) Ingest(ctx context.Context, input *IngestDocumentInput) (*domain.ReviewDocument, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if !domain.AllowedContentTypes[http.DetectContentType(buf[:n])] {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docID := ident.New()
	storageKey := fmt.Sprintf("documents/%s/%s", docID, input.Header.Filename)

	doc := &domain.ReviewDocument{
		ID:            docID,
		FileName:      input.Header.Filename,
		DocumentType:  input.DocumentType,
		UploadedAt:    time.Now().UTC(),
		Confidence:    input.Confidence,
		StorageBucket: s.cfg.Bucket,
		StorageKey:    storageKey,
		State:         domain.ReviewStatePendingReview,
		ExtractedData: input.ExtractedData,
	}

	log.Printf("fileService.Ingest: uploading document %s (%s, %d bytes)",
		input.Header.Filename, contentType, input.Header.Size)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         storageKey,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("fileService.Ingest: upload failed for document %s: %v", docID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		log.Printf("fileService.Ingest: failed to register document %s: %v", docID, err)
		// Best effort: the orphaned object is removed so storage and queue agree.
		_ = s.storage.Delete(ctx, s.cfg.Bucket, storageKey)
		return nil, fmt.Errorf("registering document: %w", err)
	}

	return doc, nil
}

func (s *fileService) Download(ctx context.Context, documentID uuid.UUID) (*DownloadOutput, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Download(ctx, doc.StorageBucket, doc.StorageKey)
	if err != nil {
		log.Printf("fileService.Download: download failed for document %s: %v", documentID, err)
		return nil, domain.ErrDownloadFailed
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(doc.FileName), "."))
	contentType := domain.AllowedExtensions[ext]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &DownloadOutput{
		Data:        data,
		ContentType: contentType,
		FileName:    doc.FileName,
	}, nil
}

func (s *fileService) GetDownloadURL(ctx context.Context, documentID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.StorageBucket, doc.StorageKey, s.cfg.PresignExpiry)
}

func (s *fileService) Delete(ctx context.Context, documentID uuid.UUID) error {
	log.Printf("fileService.Delete: deleting document %s", documentID)

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageBucket, doc.StorageKey); err != nil {
		log.Printf("fileService.Delete: failed to delete from storage: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	// The queue row goes with the object so storage and queue agree.
	return s.docRepo.Delete(ctx, documentID)
}
