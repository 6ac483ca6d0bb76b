package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type organizationRepo struct {
	db *sqlx.DB
}

// NewOrganizationRepo creates a new PostgreSQL-backed OrganizationRepository.
func NewOrganizationRepo(db *sqlx.DB) port.OrganizationRepository {
	return &organizationRepo{db: db}
}

// organizationRow maps the table shape; categories and steps are JSONB.
type organizationRow struct {
	UUID            uuid.UUID       `db:"uuid"`
	Name            string          `db:"name"`
	Logo            string          `db:"logo"`
	CurrentCategory string          `db:"current_category"`
	CurrentStep     int             `db:"current_step"`
	Categories      json.RawMessage `db:"categories"`
	Steps           json.RawMessage `db:"steps"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r organizationRow) toDomain() (*domain.Organization, error) {
	org := &domain.Organization{
		UUID:            r.UUID,
		Name:            r.Name,
		Logo:            r.Logo,
		CurrentCategory: r.CurrentCategory,
		CurrentStep:     r.CurrentStep,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if len(r.Categories) > 0 {
		if err := json.Unmarshal(r.Categories, &org.Categories); err != nil {
			return nil, fmt.Errorf("unmarshaling categories for %s: %w", r.UUID, err)
		}
	}
	if len(r.Steps) > 0 {
		if err := json.Unmarshal(r.Steps, &org.Steps); err != nil {
			return nil, fmt.Errorf("unmarshaling steps for %s: %w", r.UUID, err)
		}
	}
	return org, nil
}

func rowFromDomain(org *domain.Organization) (*organizationRow, error) {
	categories, err := json.Marshal(org.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshaling categories: %w", err)
	}
	steps, err := json.Marshal(org.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshaling steps: %w", err)
	}
	return &organizationRow{
		UUID:            org.UUID,
		Name:            org.Name,
		Logo:            org.Logo,
		CurrentCategory: org.CurrentCategory,
		CurrentStep:     org.CurrentStep,
		Categories:      categories,
		Steps:           steps,
		CreatedAt:       org.CreatedAt,
		UpdatedAt:       org.UpdatedAt,
	}, nil
}

func (r *organizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	var rows []organizationRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM organizations ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("organizationRepo.List: %w", err)
	}

	orgs := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		org, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("organizationRepo.List: %w", err)
		}
		orgs = append(orgs, *org)
	}
	return orgs, nil
}

func (r *organizationRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var row organizationRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM organizations WHERE uuid = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("organizationRepo.GetByUUID: %w", err)
	}
	return row.toDomain()
}

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	row, err := rowFromDomain(org)
	if err != nil {
		return fmt.Errorf("organizationRepo.Create: %w", err)
	}

	query := `INSERT INTO organizations (uuid, name, logo, current_category, current_step, categories, steps, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		row.UUID, row.Name, row.Logo, row.CurrentCategory, row.CurrentStep,
		row.Categories, row.Steps, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("organizationRepo.Create: %w", err)
	}
	return nil
}

func (r *organizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	org.UpdatedAt = time.Now().UTC()

	row, err := rowFromDomain(org)
	if err != nil {
		return fmt.Errorf("organizationRepo.Update: %w", err)
	}

	query := `UPDATE organizations
		SET name = $1, logo = $2, current_category = $3, current_step = $4, categories = $5, steps = $6, updated_at = $7
		WHERE uuid = $8`
	result, err := r.db.ExecContext(ctx, query,
		row.Name, row.Logo, row.CurrentCategory, row.CurrentStep,
		row.Categories, row.Steps, row.UpdatedAt, row.UUID)
	if err != nil {
		return fmt.Errorf("organizationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}
