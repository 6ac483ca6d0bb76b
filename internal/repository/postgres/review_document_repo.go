package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type reviewDocumentRepo struct {
	db *sqlx.DB
}

// NewReviewDocumentRepo creates a new PostgreSQL-backed ReviewDocumentRepository.
func NewReviewDocumentRepo(db *sqlx.DB) port.ReviewDocumentRepository {
	return &reviewDocumentRepo{db: db}
}

type reviewDocumentRow struct {
	ID            uuid.UUID       `db:"id"`
	FileName      string          `db:"file_name"`
	DocumentType  string          `db:"document_type"`
	UploadedAt    sql.NullTime    `db:"uploaded_at"`
	Confidence    float64         `db:"confidence"`
	StorageBucket string          `db:"storage_bucket"`
	StorageKey    string          `db:"storage_key"`
	State         string          `db:"state"`
	ReviewedAt    sql.NullTime    `db:"reviewed_at"`
	ExtractedData json.RawMessage `db:"extracted_data"`
}

func (r reviewDocumentRow) toDomain() (*domain.ReviewDocument, error) {
	doc := &domain.ReviewDocument{
		ID:            r.ID,
		FileName:      r.FileName,
		DocumentType:  r.DocumentType,
		Confidence:    r.Confidence,
		StorageBucket: r.StorageBucket,
		StorageKey:    r.StorageKey,
		State:         domain.ReviewState(r.State),
	}
	if r.UploadedAt.Valid {
		doc.UploadedAt = r.UploadedAt.Time
	}
	if r.ReviewedAt.Valid {
		t := r.ReviewedAt.Time
		doc.ReviewedAt = &t
	}
	if len(r.ExtractedData) > 0 {
		if err := json.Unmarshal(r.ExtractedData, &doc.ExtractedData); err != nil {
			return nil, fmt.Errorf("unmarshaling extracted data for %s: %w", r.ID, err)
		}
	}
	return doc, nil
}

func (r *reviewDocumentRepo) ListPending(ctx context.Context, offset, limit int) ([]domain.ReviewDocument, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM review_documents WHERE state = $1", domain.ReviewStatePendingReview)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewDocumentRepo.ListPending count: %w", err)
	}

	var rows []reviewDocumentRow
	err = r.db.SelectContext(ctx, &rows,
		"SELECT * FROM review_documents WHERE state = $1 ORDER BY uploaded_at ASC LIMIT $2 OFFSET $3",
		domain.ReviewStatePendingReview, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewDocumentRepo.ListPending: %w", err)
	}

	docs := make([]domain.ReviewDocument, 0, len(rows))
	for _, row := range rows {
		doc, err := row.toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("reviewDocumentRepo.ListPending: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, total, nil
}

func (r *reviewDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error) {
	var row reviewDocumentRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM review_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("reviewDocumentRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *reviewDocumentRepo) Create(ctx context.Context, doc *domain.ReviewDocument) error {
	extracted, err := json.Marshal(doc.ExtractedData)
	if err != nil {
		return fmt.Errorf("reviewDocumentRepo.Create: marshaling extracted data: %w", err)
	}

	query := `INSERT INTO review_documents (id, file_name, document_type, uploaded_at, confidence, storage_bucket, storage_key, state, extracted_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		doc.ID, doc.FileName, doc.DocumentType, doc.UploadedAt, doc.Confidence,
		doc.StorageBucket, doc.StorageKey, doc.State, extracted)
	if err != nil {
		return fmt.Errorf("reviewDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewDocumentRepo) UpdateOutcome(ctx context.Context, doc *domain.ReviewDocument) error {
	extracted, err := json.Marshal(doc.ExtractedData)
	if err != nil {
		return fmt.Errorf("reviewDocumentRepo.UpdateOutcome: marshaling extracted data: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE review_documents SET state = $1, reviewed_at = $2, extracted_data = $3 WHERE id = $4",
		doc.State, doc.ReviewedAt, extracted, doc.ID)
	if err != nil {
		return fmt.Errorf("reviewDocumentRepo.UpdateOutcome: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *reviewDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM review_documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("reviewDocumentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
