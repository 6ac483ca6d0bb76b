package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/ident"
	"docboard/internal/port"
	"docboard/internal/validation"
)

// CreateOrganizationInput is the DTO for creating an organization.
type CreateOrganizationInput struct {
	Name       string
	Logo       string
	Categories []string
	Steps      map[domain.DocTypeKey][]domain.FileMetadataStep
}

// UpdateOrganizationInput is the DTO for updating an organization's profile
// and navigation position. Steps are patched separately per pipeline key.
type UpdateOrganizationInput struct {
	UUID            uuid.UUID
	Name            string
	Logo            string
	CurrentCategory string
	CurrentStep     int
	Categories      []string
}

// OrganizationService defines the organization management contract.
type OrganizationService interface {
	List(ctx context.Context) ([]domain.Organization, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	Create(ctx context.Context, input *CreateOrganizationInput) (*domain.Organization, error)
	Update(ctx context.Context, input *UpdateOrganizationInput) (*domain.Organization, error)
	UpdateSteps(ctx context.Context, orgUUID uuid.UUID, key domain.DocTypeKey, steps []domain.FileMetadataStep) (*domain.Organization, error)
	DuplicateMessages(ctx context.Context, orgUUID uuid.UUID, key domain.DocTypeKey, stepIndex int) (*domain.Organization, error)
}

type organizationService struct {
	orgRepo port.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService implementation.
func NewOrganizationService(orgRepo port.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) List(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return s.orgRepo.GetByUUID(ctx, id)
}

func (s *organizationService) Create(ctx context.Context, input *CreateOrganizationInput) (*domain.Organization, error) {
	org := &domain.Organization{
		UUID:       ident.New(),
		Name:       input.Name,
		Logo:       input.Logo,
		Categories: input.Categories,
		Steps:      input.Steps,
	}
	if len(input.Categories) > 0 {
		org.CurrentCategory = input.Categories[0]
	}

	if verr := validation.Organization(org); verr != nil {
		return nil, verr
	}

	log.Printf("organizationService.Create: creating organization %s (%s)", org.UUID, org.Name)

	if err := s.orgRepo.Create(ctx, org); err != nil {
		log.Printf("organizationService.Create: failed to create organization: %v", err)
		return nil, fmt.Errorf("creating organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, input *UpdateOrganizationInput) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByUUID(ctx, input.UUID)
	if err != nil {
		return nil, err
	}

	org.Name = input.Name
	org.Logo = input.Logo
	org.CurrentCategory = input.CurrentCategory
	org.CurrentStep = input.CurrentStep
	if input.Categories != nil {
		org.Categories = input.Categories
	}

	// Partial updates are checked against the reconstructed full entity so
	// cross-field invariants (current category membership) hold.
	if verr := validation.Organization(org); verr != nil {
		return nil, verr
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) UpdateSteps(ctx context.Context, orgUUID uuid.UUID, key domain.DocTypeKey, steps []domain.FileMetadataStep) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByUUID(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	if verr := validation.StepPatch(org, key, steps); verr != nil {
		return nil, verr
	}
	if err := checkStatusAdvance(org, steps); err != nil {
		return nil, err
	}

	log.Printf("organizationService.UpdateSteps: updating %d %s steps for organization %s",
		len(steps), key, orgUUID)

	applySteps(org, key, steps)
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// checkStatusAdvance rejects a step patch that rewinds a stored message's
// status. Statuses only march forward; a lower index means the client is
// replaying a stale copy of the pipeline.
func checkStatusAdvance(org *domain.Organization, steps []domain.FileMetadataStep) error {
	stored := make(map[uuid.UUID]int)
	for _, pipeline := range org.Steps {
		for _, step := range pipeline {
			for _, msg := range step.ChatMessages {
				stored[msg.UUID] = msg.StatusIndex
			}
		}
	}
	for _, step := range steps {
		for _, msg := range step.ChatMessages {
			if prev, ok := stored[msg.UUID]; ok && msg.StatusIndex < prev {
				log.Printf("organizationService.UpdateSteps: message %s status index %d behind stored %d",
					msg.UUID, msg.StatusIndex, prev)
				return domain.ErrStatusIndexBackward
			}
		}
	}
	return nil
}

// applySteps replaces one pipeline on the entity, never mutating the map the
// caller may still share.
func applySteps(org *domain.Organization, key domain.DocTypeKey, steps []domain.FileMetadataStep) {
	merged := make(map[domain.DocTypeKey][]domain.FileMetadataStep, len(org.Steps)+1)
	for k, v := range org.Steps {
		merged[k] = v
	}
	merged[key] = steps
	org.Steps = merged
}

// DuplicateMessages clones the chat sequence of one pipeline step back onto
// itself with fresh identities, the only sanctioned duplication path.
func (s *organizationService) DuplicateMessages(ctx context.Context, orgUUID uuid.UUID, key domain.DocTypeKey, stepIndex int) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByUUID(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	steps, ok := org.Steps[key]
	if !ok || stepIndex < 0 || stepIndex >= len(steps) {
		return nil, domain.ErrNotFound
	}

	clones := ident.CloneMessagesWithFreshIDs(steps[stepIndex].ChatMessages)
	patchedSteps := make([]domain.FileMetadataStep, len(steps))
	copy(patchedSteps, steps)
	patchedSteps[stepIndex].ChatMessages = append(
		append([]domain.Message(nil), steps[stepIndex].ChatMessages...), clones...)

	if verr := validation.StepPatch(org, key, patchedSteps); verr != nil {
		return nil, verr
	}

	applySteps(org, key, patchedSteps)
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}
