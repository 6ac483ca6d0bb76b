package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docboard/internal/domain"
)

func TestDocumentTypeRegistry(t *testing.T) {
	err := DocumentTypeRegistry([]domain.DocumentType{
		{ID: "invoice", Schema: domain.SchemaFields{Fields: []domain.SchemaField{
			{Name: "total", Type: "number", Required: true},
			{Name: "total", Type: "number"},
		}}},
		{ID: "invoice"},
	})
	require.NotNil(t, err)

	paths := fieldPaths(err)
	assert.Contains(t, paths, "document_types[0].schema.fields[1].name")
	assert.Contains(t, paths, "document_types[1].id")
}

func TestApplication_FieldRuleRequirements(t *testing.T) {
	app := &domain.Application{
		ID: "mortgage-intake",
		ValidationRules: []domain.ValidationRule{
			{ID: "r1", Type: domain.RuleTypeField},
		},
	}

	err := Application(app)
	require.NotNil(t, err)

	paths := fieldPaths(err)
	assert.Contains(t, paths, "validation_rules[0].document_type_id")
	assert.Contains(t, paths, "validation_rules[0].document_field")
}

func TestApplication_UnknownRuleType(t *testing.T) {
	app := &domain.Application{
		ID: "mortgage-intake",
		ValidationRules: []domain.ValidationRule{
			{ID: "r1", Type: "regex"},
		},
	}

	err := Application(app)
	require.NotNil(t, err)
	assert.Contains(t, fieldPaths(err), "validation_rules[0].type")
}

func TestApplication_Valid(t *testing.T) {
	app := &domain.Application{
		ID:              "mortgage-intake",
		Description:     "mortgage onboarding",
		DocumentTypesID: []string{"mortgage", "invoice"},
		ValidationRules: []domain.ValidationRule{
			{ID: "r1", Name: "total present", Type: domain.RuleTypeField, DocumentTypeID: "invoice", DocumentField: "total"},
			{ID: "r2", Name: "complete", Type: domain.RuleTypeApplication},
		},
	}
	assert.Nil(t, Application(app))
}
