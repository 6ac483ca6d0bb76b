package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
	"docboard/internal/validation"
	"docboard/mocks"
)

func storedOrganization() *domain.Organization {
	return &domain.Organization{
		UUID:            uuid.New(),
		Name:            "Acme Lending",
		Logo:            "https://cdn.example.com/acme.png",
		CurrentCategory: "intake",
		Categories:      []string{"intake", "underwriting"},
		Steps: map[domain.DocTypeKey][]domain.FileMetadataStep{
			domain.DocTypeInvoice: {
				{ChatMessages: []domain.Message{
					{UUID: uuid.New(), CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot, Text: "hello"},
					{UUID: uuid.New(), CreatedAt: "2024-01-01T00:01:00Z", Sender: domain.SenderUser, Text: "hi"},
				}},
			},
		},
	}
}

func TestOrganizationService_CreateDefaultsCurrentCategory(t *testing.T) {
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Organization")).Return(nil)

	svc := NewOrganizationService(orgRepo)
	org, err := svc.Create(context.Background(), &CreateOrganizationInput{
		Name:       "Acme Lending",
		Logo:       "https://cdn.example.com/acme.png",
		Categories: []string{"intake", "underwriting"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, org.UUID)
	assert.Equal(t, "intake", org.CurrentCategory)
	orgRepo.AssertExpectations(t)
}

func TestOrganizationService_CreateValidationFailure(t *testing.T) {
	orgRepo := new(mocks.MockOrganizationRepo)

	svc := NewOrganizationService(orgRepo)
	_, err := svc.Create(context.Background(), &CreateOrganizationInput{Name: "Acme Lending"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	orgRepo.AssertNotCalled(t, "Create")
}

func TestOrganizationService_UpdateChecksCategoryMembership(t *testing.T) {
	stored := storedOrganization()
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)

	svc := NewOrganizationService(orgRepo)
	_, err := svc.Update(context.Background(), &UpdateOrganizationInput{
		UUID:            stored.UUID,
		Name:            stored.Name,
		Logo:            stored.Logo,
		CurrentCategory: "archived",
	})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	orgRepo.AssertNotCalled(t, "Update")
}

func TestOrganizationService_UpdateStepsRejectsUnknownKey(t *testing.T) {
	stored := storedOrganization()
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)

	svc := NewOrganizationService(orgRepo)
	_, err := svc.UpdateSteps(context.Background(), stored.UUID, "payslip", nil)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	orgRepo.AssertNotCalled(t, "Update")
}

func TestOrganizationService_UpdateStepsReplacesOnePipeline(t *testing.T) {
	stored := storedOrganization()
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)
	orgRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Organization")).Return(nil)

	steps := []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{UUID: uuid.New(), CreatedAt: "2024-02-01T00:00:00Z", Sender: domain.SenderBot},
		}},
	}

	svc := NewOrganizationService(orgRepo)
	org, err := svc.UpdateSteps(context.Background(), stored.UUID, domain.DocTypeMortgage, steps)
	require.NoError(t, err)

	assert.Len(t, org.Steps[domain.DocTypeMortgage], 1)
	assert.Len(t, org.Steps[domain.DocTypeInvoice], 1)
}

func TestOrganizationService_UpdateStepsRejectsBackwardStatusIndex(t *testing.T) {
	stored := storedOrganization()
	msgID := uuid.New()
	stored.Steps[domain.DocTypeInvoice] = []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{
				UUID: msgID, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot,
				Statuses:    []domain.MessageStatus{{Status: "sent"}, {Status: "delivered"}, {Status: "read"}},
				StatusIndex: 2,
			},
		}},
	}
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)

	steps := []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{
				UUID: msgID, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot,
				Statuses:    []domain.MessageStatus{{Status: "sent"}, {Status: "delivered"}, {Status: "read"}},
				StatusIndex: 0,
			},
		}},
	}

	svc := NewOrganizationService(orgRepo)
	_, err := svc.UpdateSteps(context.Background(), stored.UUID, domain.DocTypeInvoice, steps)

	assert.ErrorIs(t, err, domain.ErrStatusIndexBackward)
	orgRepo.AssertNotCalled(t, "Update")
}

func TestOrganizationService_UpdateStepsAcceptsAdvancingStatusIndex(t *testing.T) {
	stored := storedOrganization()
	msgID := uuid.New()
	statuses := []domain.MessageStatus{{Status: "sent"}, {Status: "delivered"}, {Status: "read"}}
	stored.Steps[domain.DocTypeInvoice] = []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{UUID: msgID, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot, Statuses: statuses, StatusIndex: 1},
		}},
	}
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)
	orgRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Organization")).Return(nil)

	steps := []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{UUID: msgID, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot, Statuses: statuses, StatusIndex: 2},
		}},
	}

	svc := NewOrganizationService(orgRepo)
	org, err := svc.UpdateSteps(context.Background(), stored.UUID, domain.DocTypeInvoice, steps)
	require.NoError(t, err)
	assert.Equal(t, 2, org.Steps[domain.DocTypeInvoice][0].ChatMessages[0].StatusIndex)
}

func TestOrganizationService_DuplicateMessages(t *testing.T) {
	stored := storedOrganization()
	originals := append([]domain.Message(nil), stored.Steps[domain.DocTypeInvoice][0].ChatMessages...)

	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)
	orgRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Organization")).Return(nil)

	svc := NewOrganizationService(orgRepo)
	org, err := svc.DuplicateMessages(context.Background(), stored.UUID, domain.DocTypeInvoice, 0)
	require.NoError(t, err)

	msgs := org.Steps[domain.DocTypeInvoice][0].ChatMessages
	require.Len(t, msgs, 2*len(originals))

	seen := make(map[uuid.UUID]bool)
	for _, m := range msgs {
		assert.False(t, seen[m.UUID], "duplicated message reused uuid %s", m.UUID)
		seen[m.UUID] = true
	}
	// Clones carry over text and sender, only identity is fresh.
	assert.Equal(t, originals[0].Text, msgs[len(originals)].Text)
	assert.Equal(t, originals[0].Sender, msgs[len(originals)].Sender)
}

func TestOrganizationService_DuplicateMessagesUnknownStep(t *testing.T) {
	stored := storedOrganization()
	orgRepo := new(mocks.MockOrganizationRepo)
	orgRepo.On("GetByUUID", mock.Anything, stored.UUID).Return(stored, nil)

	svc := NewOrganizationService(orgRepo)

	_, err := svc.DuplicateMessages(context.Background(), stored.UUID, domain.DocTypeInvoice, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.DuplicateMessages(context.Background(), stored.UUID, domain.DocTypeCommission, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
