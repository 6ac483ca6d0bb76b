package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
	"docboard/internal/state"
	"docboard/internal/viewparams"
	"docboard/mocks"
)

type workspaceFixture struct {
	svc      WorkspaceService
	store    *state.Store
	history  *viewparams.MemoryHistory
	orgRepo  *mocks.MockOrganizationRepo
	dashRepo *mocks.MockDashboardRepo
	typeRepo *mocks.MockDocumentTypeRepo
	appRepo  *mocks.MockApplicationRepo
	docRepo  *mocks.MockReviewDocumentRepo
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()
	f := &workspaceFixture{
		store:    state.New(state.Snapshot{}),
		history:  viewparams.NewMemoryHistory(),
		orgRepo:  new(mocks.MockOrganizationRepo),
		dashRepo: new(mocks.MockDashboardRepo),
		typeRepo: new(mocks.MockDocumentTypeRepo),
		appRepo:  new(mocks.MockApplicationRepo),
		docRepo:  new(mocks.MockReviewDocumentRepo),
	}
	binder := viewparams.NewBinder(f.store, f.history)
	t.Cleanup(binder.Close)
	signer := viewparams.NewSigner("test-secret", "docboard", time.Hour)
	f.svc = NewWorkspaceService(f.store, binder, signer,
		f.orgRepo, f.dashRepo, f.typeRepo, f.appRepo, f.docRepo, 50)
	return f
}

func TestWorkspaceService_Hydrate(t *testing.T) {
	f := newWorkspaceFixture(t)

	org := domain.Organization{UUID: uuid.New(), Name: "Acme", Logo: "https://cdn.example.com/acme.png"}
	dashboards := []domain.DashboardProject{{UUID: uuid.New(), Name: "Overview"}}
	queue := []domain.ReviewDocument{{ID: uuid.New(), FileName: "a.pdf", State: domain.ReviewStatePendingReview}}

	f.orgRepo.On("List", mock.Anything).Return([]domain.Organization{org}, nil)
	f.dashRepo.On("ListByOrganization", mock.Anything, org.UUID).Return(dashboards, nil)
	f.typeRepo.On("List", mock.Anything).Return([]domain.DocumentType{{ID: "invoice"}}, nil)
	f.appRepo.On("List", mock.Anything).Return([]domain.Application{}, nil)
	f.docRepo.On("ListPending", mock.Anything, 0, 50).Return(queue, 1, nil)

	require.NoError(t, f.svc.Hydrate(context.Background()))

	snap := f.svc.State()
	assert.Equal(t, org.UUID, snap.OrganizationUUID, "current organization resolved to the first fetched")
	assert.Equal(t, dashboards, snap.DashboardList)
	assert.Len(t, snap.DocumentTypes, 1)
	assert.Equal(t, queue, snap.ReviewQueue)
}

func TestWorkspaceService_HydrateDegradesDanglingFieldRules(t *testing.T) {
	f := newWorkspaceFixture(t)

	apps := []domain.Application{{
		ID: "loan-application",
		ValidationRules: []domain.ValidationRule{
			{ID: "r1", Type: domain.RuleTypeField, DocumentTypeID: "invoice", DocumentField: "total"},
			{ID: "r2", Type: domain.RuleTypeField, DocumentTypeID: "payslip", DocumentField: "net_pay"},
			{ID: "r3", Type: domain.RuleTypeApplication},
		},
	}}

	f.orgRepo.On("List", mock.Anything).Return([]domain.Organization{}, nil)
	f.typeRepo.On("List", mock.Anything).Return([]domain.DocumentType{{ID: "invoice"}}, nil)
	f.appRepo.On("List", mock.Anything).Return(apps, nil)
	f.docRepo.On("ListPending", mock.Anything, 0, 50).Return([]domain.ReviewDocument{}, 0, nil)

	require.NoError(t, f.svc.Hydrate(context.Background()))

	rules := f.svc.State().Applications[0].ValidationRules
	require.Len(t, rules, 3)
	assert.Equal(t, domain.RuleTypeField, rules[0].Type, "rule over a registered type keeps field scope")
	assert.Equal(t, "total", rules[0].DocumentField)
	assert.Equal(t, domain.RuleTypeDocument, rules[1].Type, "rule over a missing type widens to document scope")
	assert.Empty(t, rules[1].DocumentField)
	assert.Equal(t, domain.RuleTypeApplication, rules[2].Type)
}

func TestWorkspaceService_HydrateRepoFailureLeavesEntitiesAlone(t *testing.T) {
	f := newWorkspaceFixture(t)
	f.orgRepo.On("List", mock.Anything).Return(nil, assert.AnError)

	before := f.svc.State()
	require.Error(t, f.svc.Hydrate(context.Background()))
	assert.Equal(t, before, f.svc.State())
}

func TestWorkspaceService_SelectOrganization(t *testing.T) {
	f := newWorkspaceFixture(t)

	first := domain.Organization{UUID: uuid.New(), Name: "Acme", Logo: "https://cdn.example.com/a.png"}
	second := domain.Organization{UUID: uuid.New(), Name: "Globex", Logo: "https://cdn.example.com/g.png"}
	orgs := []domain.Organization{first, second}
	require.NoError(t, f.svc.ApplyPatch(state.Patch{Organizations: &orgs}))

	active := uuid.New()
	require.NoError(t, f.svc.ApplyPatch(state.Patch{ActiveDashboard: &active}))

	swapped := []domain.DashboardProject{{UUID: uuid.New(), Name: "Globex Overview"}}
	f.dashRepo.On("ListByOrganization", mock.Anything, second.UUID).Return(swapped, nil)

	require.NoError(t, f.svc.SelectOrganization(context.Background(), second.UUID))

	snap := f.svc.State()
	assert.Equal(t, second.UUID, snap.OrganizationUUID)
	assert.Equal(t, swapped, snap.DashboardList)
	assert.Equal(t, uuid.Nil, snap.ActiveDashboard, "active dashboard belonged to the old organization")
}

func TestWorkspaceService_SelectUnknownOrganization(t *testing.T) {
	f := newWorkspaceFixture(t)
	err := f.svc.SelectOrganization(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}

func TestWorkspaceService_SetViewParamsMirrorsToHistory(t *testing.T) {
	f := newWorkspaceFixture(t)

	values := url.Values{}
	values.Set("tab", "review")
	require.NoError(t, f.svc.SetViewParams(values))

	assert.Equal(t, domain.TabReview, f.svc.State().ActiveTab)
	// Navigation applied from the URL side is not echoed back.
	assert.Equal(t, 1, f.history.Len())
}

func TestWorkspaceService_ShareLinkRoundTrip(t *testing.T) {
	f := newWorkspaceFixture(t)

	tab := domain.TabReview
	docID := uuid.New()
	require.NoError(t, f.svc.ApplyPatch(state.Patch{ActiveTab: &tab, ActiveDocumentID: &docID}))

	token, err := f.svc.CreateShareLink()
	require.NoError(t, err)

	f.svc.Reset()
	require.Equal(t, domain.DefaultTab, f.svc.State().ActiveTab)

	params, err := f.svc.ResolveShareLink(token)
	require.NoError(t, err)
	assert.Equal(t, domain.TabReview, params.Tab)
	assert.Equal(t, docID, params.Document)

	snap := f.svc.State()
	assert.Equal(t, domain.TabReview, snap.ActiveTab)
	assert.Equal(t, docID, snap.ActiveDocumentID)
}

func TestWorkspaceService_ResolveInvalidShareLink(t *testing.T) {
	f := newWorkspaceFixture(t)
	_, err := f.svc.ResolveShareLink("garbage")
	assert.ErrorIs(t, err, domain.ErrShareTokenInvalid)
}

func TestWorkspaceService_ResetRestoresInitialState(t *testing.T) {
	f := newWorkspaceFixture(t)
	initial := f.svc.InitialState()

	tab := domain.TabAdmin
	require.NoError(t, f.svc.ApplyPatch(state.Patch{ActiveTab: &tab}))

	f.svc.Reset()
	assert.Equal(t, initial, f.svc.State())
}
