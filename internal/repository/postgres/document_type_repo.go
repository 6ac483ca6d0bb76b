package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type documentTypeRepo struct {
	db *sqlx.DB
}

// NewDocumentTypeRepo creates a new PostgreSQL-backed DocumentTypeRepository.
func NewDocumentTypeRepo(db *sqlx.DB) port.DocumentTypeRepository {
	return &documentTypeRepo{db: db}
}

type documentTypeRow struct {
	ID     string          `db:"id"`
	Schema json.RawMessage `db:"schema"`
}

func (r documentTypeRow) toDomain() (*domain.DocumentType, error) {
	dt := &domain.DocumentType{ID: r.ID}
	if len(r.Schema) > 0 {
		if err := json.Unmarshal(r.Schema, &dt.Schema); err != nil {
			return nil, fmt.Errorf("unmarshaling schema for %s: %w", r.ID, err)
		}
	}
	return dt, nil
}

func (r *documentTypeRepo) List(ctx context.Context) ([]domain.DocumentType, error) {
	var rows []documentTypeRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM document_types ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("documentTypeRepo.List: %w", err)
	}

	types := make([]domain.DocumentType, 0, len(rows))
	for _, row := range rows {
		dt, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("documentTypeRepo.List: %w", err)
		}
		types = append(types, *dt)
	}
	return types, nil
}

func (r *documentTypeRepo) GetByID(ctx context.Context, id string) (*domain.DocumentType, error) {
	var row documentTypeRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM document_types WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentTypeRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *documentTypeRepo) Upsert(ctx context.Context, dt *domain.DocumentType) error {
	schema, err := json.Marshal(dt.Schema)
	if err != nil {
		return fmt.Errorf("documentTypeRepo.Upsert: marshaling schema: %w", err)
	}

	query := `INSERT INTO document_types (id, schema) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET schema = EXCLUDED.schema`
	_, err = r.db.ExecContext(ctx, query, dt.ID, schema)
	if err != nil {
		return fmt.Errorf("documentTypeRepo.Upsert: %w", err)
	}
	return nil
}
