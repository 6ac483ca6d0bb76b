package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docboard/internal/domain"
	"docboard/internal/export"
	"docboard/internal/ident"
	"docboard/internal/port"
	"docboard/internal/validation"
)

// CreateDashboardInput is the DTO for creating a dashboard project.
type CreateDashboardInput struct {
	OrgUUID uuid.UUID
	Name    string
	Items   []domain.DashboardItem
}

// UpdateDashboardInput is the DTO for updating a dashboard project.
type UpdateDashboardInput struct {
	OrgUUID     uuid.UUID
	ProjectUUID uuid.UUID
	Name        string
	Items       []domain.DashboardItem
}

// DashboardService defines the dashboard management contract.
type DashboardService interface {
	List(ctx context.Context, orgUUID uuid.UUID) ([]domain.DashboardProject, error)
	Create(ctx context.Context, input *CreateDashboardInput) (*domain.DashboardProject, error)
	Update(ctx context.Context, input *UpdateDashboardInput) (*domain.DashboardProject, error)
	Delete(ctx context.Context, orgUUID, projectUUID uuid.UUID) error
	ExportWorkbook(ctx context.Context, orgUUID, projectUUID uuid.UUID) (*excelize.File, string, error)
}

type dashboardService struct {
	dashboardRepo port.DashboardRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(dashboardRepo port.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) List(ctx context.Context, orgUUID uuid.UUID) ([]domain.DashboardProject, error) {
	return s.dashboardRepo.ListByOrganization(ctx, orgUUID)
}

func (s *dashboardService) Create(ctx context.Context, input *CreateDashboardInput) (*domain.DashboardProject, error) {
	project := &domain.DashboardProject{
		UUID:  ident.New(),
		Name:  input.Name,
		Items: input.Items,
	}
	for i := range project.Items {
		if project.Items[i].UUID == uuid.Nil {
			project.Items[i].UUID = ident.New()
		}
	}

	// Uniqueness is a list-wide invariant, so validate the candidate against
	// the organization's existing projects.
	existing, err := s.dashboardRepo.ListByOrganization(ctx, input.OrgUUID)
	if err != nil {
		return nil, fmt.Errorf("listing dashboards: %w", err)
	}
	if verr := validation.Dashboards(append(existing, *project)); verr != nil {
		return nil, verr
	}

	log.Printf("dashboardService.Create: creating dashboard %s (%s) for organization %s",
		project.UUID, project.Name, input.OrgUUID)

	if err := s.dashboardRepo.Create(ctx, input.OrgUUID, project); err != nil {
		log.Printf("dashboardService.Create: failed to create dashboard: %v", err)
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}
	return project, nil
}

func (s *dashboardService) Update(ctx context.Context, input *UpdateDashboardInput) (*domain.DashboardProject, error) {
	existing, err := s.dashboardRepo.ListByOrganization(ctx, input.OrgUUID)
	if err != nil {
		return nil, fmt.Errorf("listing dashboards: %w", err)
	}

	var project *domain.DashboardProject
	for i := range existing {
		if existing[i].UUID == input.ProjectUUID {
			project = &existing[i]
			break
		}
	}
	if project == nil {
		return nil, domain.ErrDashboardNotFound
	}

	project.Name = input.Name
	if input.Items != nil {
		project.Items = input.Items
	}

	if verr := validation.Dashboards(existing); verr != nil {
		return nil, verr
	}

	if err := s.dashboardRepo.Update(ctx, input.OrgUUID, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *dashboardService) Delete(ctx context.Context, orgUUID, projectUUID uuid.UUID) error {
	log.Printf("dashboardService.Delete: deleting dashboard %s for organization %s", projectUUID, orgUUID)
	return s.dashboardRepo.Delete(ctx, orgUUID, projectUUID)
}

func (s *dashboardService) ExportWorkbook(ctx context.Context, orgUUID, projectUUID uuid.UUID) (*excelize.File, string, error) {
	projects, err := s.dashboardRepo.ListByOrganization(ctx, orgUUID)
	if err != nil {
		return nil, "", fmt.Errorf("listing dashboards: %w", err)
	}

	for i := range projects {
		if projects[i].UUID == projectUUID {
			f, err := export.NewDashboardWorkbook(&projects[i])
			if err != nil {
				return nil, "", fmt.Errorf("building workbook: %w", err)
			}
			return f, export.BuildFilename(projects[i].Name), nil
		}
	}
	return nil, "", domain.ErrDashboardNotFound
}
