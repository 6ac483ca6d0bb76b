package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

type dashboardRow struct {
	UUID     uuid.UUID       `db:"uuid"`
	OrgUUID  uuid.UUID       `db:"organization_uuid"`
	Name     string          `db:"name"`
	Items    json.RawMessage `db:"items"`
	Position int             `db:"position"`
}

func (r *dashboardRepo) ListByOrganization(ctx context.Context, orgUUID uuid.UUID) ([]domain.DashboardProject, error) {
	var rows []dashboardRow
	// Position preserves insertion order; the first project is default-selected.
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM dashboards WHERE organization_uuid = $1 ORDER BY position ASC", orgUUID)
	if err != nil {
		return nil, fmt.Errorf("dashboardRepo.ListByOrganization: %w", err)
	}

	projects := make([]domain.DashboardProject, 0, len(rows))
	for _, row := range rows {
		p := domain.DashboardProject{UUID: row.UUID, Name: row.Name}
		if len(row.Items) > 0 {
			if err := json.Unmarshal(row.Items, &p.Items); err != nil {
				return nil, fmt.Errorf("dashboardRepo.ListByOrganization: unmarshaling items for %s: %w", row.UUID, err)
			}
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *dashboardRepo) Create(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error {
	items, err := json.Marshal(project.Items)
	if err != nil {
		return fmt.Errorf("dashboardRepo.Create: marshaling items: %w", err)
	}

	query := `INSERT INTO dashboards (uuid, organization_uuid, name, items, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM dashboards WHERE organization_uuid = $2))`
	_, err = r.db.ExecContext(ctx, query, project.UUID, orgUUID, project.Name, items)
	if err != nil {
		return fmt.Errorf("dashboardRepo.Create: %w", err)
	}
	return nil
}

func (r *dashboardRepo) Update(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error {
	items, err := json.Marshal(project.Items)
	if err != nil {
		return fmt.Errorf("dashboardRepo.Update: marshaling items: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE dashboards SET name = $1, items = $2 WHERE uuid = $3 AND organization_uuid = $4",
		project.Name, items, project.UUID, orgUUID)
	if err != nil {
		return fmt.Errorf("dashboardRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

func (r *dashboardRepo) Delete(ctx context.Context, orgUUID, projectUUID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM dashboards WHERE uuid = $1 AND organization_uuid = $2", projectUUID, orgUUID)
	if err != nil {
		return fmt.Errorf("dashboardRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}
