package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type applicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo creates a new PostgreSQL-backed ApplicationRepository.
func NewApplicationRepo(db *sqlx.DB) port.ApplicationRepository {
	return &applicationRepo{db: db}
}

type applicationRow struct {
	ID              string          `db:"id"`
	Description     string          `db:"description"`
	DocumentTypesID pq.StringArray  `db:"document_types_id"`
	ValidationRules json.RawMessage `db:"validation_rules"`
}

func (r applicationRow) toDomain() (*domain.Application, error) {
	app := &domain.Application{
		ID:              r.ID,
		Description:     r.Description,
		DocumentTypesID: []string(r.DocumentTypesID),
	}
	if len(r.ValidationRules) > 0 {
		if err := json.Unmarshal(r.ValidationRules, &app.ValidationRules); err != nil {
			return nil, fmt.Errorf("unmarshaling validation rules for %s: %w", r.ID, err)
		}
	}
	return app, nil
}

func (r *applicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	var rows []applicationRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM applications ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("applicationRepo.List: %w", err)
	}

	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		app, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("applicationRepo.List: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var row applicationRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM applications WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *applicationRepo) Upsert(ctx context.Context, app *domain.Application) error {
	rules, err := json.Marshal(app.ValidationRules)
	if err != nil {
		return fmt.Errorf("applicationRepo.Upsert: marshaling validation rules: %w", err)
	}

	query := `INSERT INTO applications (id, description, document_types_id, validation_rules)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			document_types_id = EXCLUDED.document_types_id,
			validation_rules = EXCLUDED.validation_rules`
	_, err = r.db.ExecContext(ctx, query, app.ID, app.Description, pq.StringArray(app.DocumentTypesID), rules)
	if err != nil {
		return fmt.Errorf("applicationRepo.Upsert: %w", err)
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM applications WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("applicationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
