package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/port"
	"docboard/internal/state"
	"docboard/internal/viewparams"
)

// WorkspaceService owns the application state store and keeps it hydrated
// from the persistence APIs. Repository calls are fallible remote operations:
// on failure the in-memory state is left exactly as it was.
type WorkspaceService interface {
	Hydrate(ctx context.Context) error
	State() state.Snapshot
	InitialState() state.Snapshot
	ApplyPatch(p state.Patch) error
	Reset()
	SelectOrganization(ctx context.Context, orgUUID uuid.UUID) error
	SetViewParams(values url.Values) error
	ViewParams() viewparams.Params
	CreateShareLink() (string, error)
	ResolveShareLink(token string) (viewparams.Params, error)
}

type workspaceService struct {
	store  *state.Store
	binder *viewparams.Binder
	signer *viewparams.Signer

	orgRepo  port.OrganizationRepository
	dashRepo port.DashboardRepository
	typeRepo port.DocumentTypeRepository
	appRepo  port.ApplicationRepository
	docRepo  port.ReviewDocumentRepository

	reviewPageSize int
}

// NewWorkspaceService creates a new WorkspaceService implementation around an
// existing store.
func NewWorkspaceService(
	store *state.Store,
	binder *viewparams.Binder,
	signer *viewparams.Signer,
	orgRepo port.OrganizationRepository,
	dashRepo port.DashboardRepository,
	typeRepo port.DocumentTypeRepository,
	appRepo port.ApplicationRepository,
	docRepo port.ReviewDocumentRepository,
	reviewPageSize int,
) WorkspaceService {
	return &workspaceService{
		store:          store,
		binder:         binder,
		signer:         signer,
		orgRepo:        orgRepo,
		dashRepo:       dashRepo,
		typeRepo:       typeRepo,
		appRepo:        appRepo,
		docRepo:        docRepo,
		reviewPageSize: reviewPageSize,
	}
}

// Hydrate loads entities from persistence and commits them to the store.
// The organization list commits first so the current-organization invariant
// resolves before the per-organization dashboard fetch.
func (s *workspaceService) Hydrate(ctx context.Context) error {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("hydrating organizations: %w", err)
	}
	if err := s.store.SetState(state.Patch{Organizations: &orgs}); err != nil {
		return err
	}

	snap := s.store.GetState()

	var dashboards []domain.DashboardProject
	if snap.OrganizationUUID != uuid.Nil {
		dashboards, err = s.dashRepo.ListByOrganization(ctx, snap.OrganizationUUID)
		if err != nil {
			return fmt.Errorf("hydrating dashboards: %w", err)
		}
	}

	docTypes, err := s.typeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("hydrating document types: %w", err)
	}
	apps, err := s.appRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("hydrating applications: %w", err)
	}
	degradeDanglingRules(apps, docTypes)
	queue, _, err := s.docRepo.ListPending(ctx, 0, s.reviewPageSize)
	if err != nil {
		return fmt.Errorf("hydrating review queue: %w", err)
	}

	log.Printf("workspaceService.Hydrate: %d organizations, %d dashboards, %d document types, %d applications, %d pending documents",
		len(orgs), len(dashboards), len(docTypes), len(apps), len(queue))

	return s.store.SetState(state.Patch{
		DashboardList: &dashboards,
		DocumentTypes: &docTypes,
		Applications:  &apps,
		ReviewQueue:   &queue,
	})
}

// degradeDanglingRules widens field rules whose document type is gone from
// the registry to document scope. A stale reference loses its field binding
// instead of failing the whole application set.
func degradeDanglingRules(apps []domain.Application, types []domain.DocumentType) {
	known := make(map[string]bool, len(types))
	for _, dt := range types {
		known[dt.ID] = true
	}
	for ai := range apps {
		for ri := range apps[ai].ValidationRules {
			r := &apps[ai].ValidationRules[ri]
			if r.Type != domain.RuleTypeField || known[r.DocumentTypeID] {
				continue
			}
			log.Printf("workspaceService.Hydrate: rule %s references missing document type %q, degrading to document scope",
				r.ID, r.DocumentTypeID)
			r.Type = domain.RuleTypeDocument
			r.DocumentField = ""
		}
	}
}

func (s *workspaceService) State() state.Snapshot {
	return s.store.GetState()
}

func (s *workspaceService) InitialState() state.Snapshot {
	return s.store.GetInitialState()
}

func (s *workspaceService) ApplyPatch(p state.Patch) error {
	return s.store.SetState(p)
}

func (s *workspaceService) Reset() {
	s.store.Reset()
}

// SelectOrganization switches the current organization and swaps in its
// dashboard list. The active dashboard is cleared: it belonged to the old
// organization.
func (s *workspaceService) SelectOrganization(ctx context.Context, orgUUID uuid.UUID) error {
	snap := s.store.GetState()
	found := false
	for _, org := range snap.Organizations {
		if org.UUID == orgUUID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrOrganizationNotFound
	}

	dashboards, err := s.dashRepo.ListByOrganization(ctx, orgUUID)
	if err != nil {
		return fmt.Errorf("loading dashboards for organization %s: %w", orgUUID, err)
	}

	none := uuid.Nil
	return s.store.SetState(state.Patch{
		OrganizationUUID: &orgUUID,
		DashboardList:    &dashboards,
		ActiveDashboard:  &none,
	})
}

func (s *workspaceService) SetViewParams(values url.Values) error {
	return s.binder.HandleNavigation(values)
}

func (s *workspaceService) ViewParams() viewparams.Params {
	snap := s.store.GetState()
	return viewparams.Params{
		Tab:       snap.ActiveTab,
		Dashboard: snap.ActiveDashboard,
		Panel:     snap.ActivePanel,
		Document:  snap.ActiveDocumentID,
	}
}

func (s *workspaceService) CreateShareLink() (string, error) {
	return s.signer.Sign(s.ViewParams())
}

// ResolveShareLink verifies a share token and applies its view params to the
// store as if the user had navigated there.
func (s *workspaceService) ResolveShareLink(token string) (viewparams.Params, error) {
	params, err := s.signer.Resolve(token)
	if err != nil {
		return params, err
	}
	return params, s.binder.HandleNavigation(viewparams.Serialize(params))
}
