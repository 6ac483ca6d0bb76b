package port

import (
	"context"

	"github.com/google/uuid"

	"docboard/internal/domain"
)

// OrganizationRepository is the persistence API the workspace consumes.
// Calls are fallible remote operations with no implicit retry; on failure
// the in-memory state is left unchanged.
type OrganizationRepository interface {
	List(ctx context.Context) ([]domain.Organization, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
}

// DashboardRepository persists dashboard projects per organization.
type DashboardRepository interface {
	ListByOrganization(ctx context.Context, orgUUID uuid.UUID) ([]domain.DashboardProject, error)
	Create(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error
	Update(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error
	Delete(ctx context.Context, orgUUID, projectUUID uuid.UUID) error
}

// ReviewDocumentRepository persists the review queue.
type ReviewDocumentRepository interface {
	ListPending(ctx context.Context, offset, limit int) ([]domain.ReviewDocument, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error)
	Create(ctx context.Context, doc *domain.ReviewDocument) error
	UpdateOutcome(ctx context.Context, doc *domain.ReviewDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentTypeRepository persists the document-type registry.
type DocumentTypeRepository interface {
	List(ctx context.Context) ([]domain.DocumentType, error)
	GetByID(ctx context.Context, id string) (*domain.DocumentType, error)
	Upsert(ctx context.Context, dt *domain.DocumentType) error
}

// ApplicationRepository persists applications and their validation rules.
type ApplicationRepository interface {
	List(ctx context.Context) ([]domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	Upsert(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id string) error
}
