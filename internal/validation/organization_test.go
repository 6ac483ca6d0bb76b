package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
)

func validOrganization() *domain.Organization {
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
				}},
			},
		},
	}
}

func TestOrganization_Valid(t *testing.T) {
	assert.Nil(t, Organization(validOrganization()))
}

func TestOrganization_RequiredFields(t *testing.T) {
	org := validOrganization()
	org.Name = ""
	org.Logo = ""

	err := Organization(org)
	require.NotNil(t, err)

	paths := fieldPaths(err)
	assert.Contains(t, paths, "name")
	assert.Contains(t, paths, "logo")
}

func TestOrganization_CurrentCategoryMembership(t *testing.T) {
	org := validOrganization()
	org.CurrentCategory = "archived"

	err := Organization(org)
	require.NotNil(t, err)
	assert.Contains(t, fieldPaths(err), "current_category")
}

func TestOrganization_UnknownStepKey(t *testing.T) {
	org := validOrganization()
	org.Steps["payslip"] = nil

	err := Organization(org)
	require.NotNil(t, err)
	assert.Contains(t, fieldPaths(err), "steps[payslip]")
}

func TestOrganization_DuplicateMessageUUIDAcrossSteps(t *testing.T) {
	shared := uuid.New()
	org := validOrganization()
	org.Steps = map[domain.DocTypeKey][]domain.FileMetadataStep{
		domain.DocTypeInvoice: {
			{ChatMessages: []domain.Message{
				{UUID: shared, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot},
			}},
		},
		domain.DocTypeMortgage: {
			{ChatMessages: []domain.Message{
				{UUID: shared, CreatedAt: "2024-01-01T00:01:00Z", Sender: domain.SenderUser},
			}},
		},
	}

	err := Organization(org)
	require.NotNil(t, err)

	// Exactly one duplicate report, pointing back at where the uuid was
	// first seen. Which occurrence is "first" depends on map order, so only
	// the shape is asserted.
	var dup *FieldError
	for i, f := range err.Fields {
		if strings.HasPrefix(f.Message, "duplicate message uuid") {
			dup = &err.Fields[i]
		}
	}
	require.NotNil(t, dup, "expected a duplicate uuid field error")
	assert.Contains(t, dup.Message, shared.String())
	assert.Contains(t, dup.Message, "first seen at")
	assert.Contains(t, dup.Message, "chat_messages")
}

func TestOrganization_MessageShape(t *testing.T) {
	org := validOrganization()
	org.Steps[domain.DocTypeInvoice] = []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{
				UUID:        uuid.New(),
				Sender:      "system",
				Statuses:    []domain.MessageStatus{{Status: "queued"}},
				StatusIndex: 3,
			},
		}},
	}

	err := Organization(org)
	require.NotNil(t, err)

	paths := fieldPaths(err)
	assert.Contains(t, paths, "steps[invoice][0].chat_messages[0].sender")
	assert.Contains(t, paths, "steps[invoice][0].chat_messages[0].created_at")
	assert.Contains(t, paths, "steps[invoice][0].chat_messages[0].status_index")
}

func TestStepPatch_DoesNotMutateOriginal(t *testing.T) {
	org := validOrganization()
	original := len(org.Steps[domain.DocTypeInvoice])

	err := StepPatch(org, domain.DocTypeMortgage, []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{UUID: uuid.New(), CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot},
		}},
	})
	assert.Nil(t, err)
	assert.Len(t, org.Steps[domain.DocTypeInvoice], original)
	assert.NotContains(t, org.Steps, domain.DocTypeMortgage)
}

func TestStepPatch_DuplicateAgainstOtherPipeline(t *testing.T) {
	org := validOrganization()
	existing := org.Steps[domain.DocTypeInvoice][0].ChatMessages[0].UUID

	err := StepPatch(org, domain.DocTypeMortgage, []domain.FileMetadataStep{
		{ChatMessages: []domain.Message{
			{UUID: existing, CreatedAt: "2024-01-01T00:00:00Z", Sender: domain.SenderBot},
		}},
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "duplicate message uuid")
}

func fieldPaths(e *Error) []string {
	paths := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		paths[i] = f.Path
	}
	return paths
}
