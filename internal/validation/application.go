package validation

import (
	"fmt"

	"docboard/internal/domain"
)

// DocumentTypeRegistry validates the registry entries themselves: ids unique,
// schema fields named and uniquely named within a type.
func DocumentTypeRegistry(types []domain.DocumentType) *Error {
	e := &Error{}

	seen := make(map[string]bool, len(types))
	for i, dt := range types {
		path := fmt.Sprintf("document_types[%d]", i)
		if dt.ID == "" {
			e.add(path+".id", "id is required")
		}
		if seen[dt.ID] {
			e.add(path+".id", "duplicate document type id %q", dt.ID)
		}
		seen[dt.ID] = true

		names := make(map[string]bool, len(dt.Schema.Fields))
		for j, f := range dt.Schema.Fields {
			fp := fmt.Sprintf("%s.schema.fields[%d]", path, j)
			if f.Name == "" {
				e.add(fp+".name", "field name is required")
			}
			if names[f.Name] {
				e.add(fp+".name", "duplicate field name %q", f.Name)
			}
			names[f.Name] = true
		}
	}

	return e.orNil()
}

// Application validates an application and its rules. A field rule must name
// both its document type and field. A rule referencing a type missing from
// the registry is not an error here: hydration degrades it to document
// scope instead of failing the whole set.
func Application(app *domain.Application) *Error {
	if app == nil {
		panic("validation: nil application")
	}
	e := &Error{}

	if app.ID == "" {
		e.add("id", "id is required")
	}

	seenTypes := make(map[string]bool, len(app.DocumentTypesID))
	for i, id := range app.DocumentTypesID {
		if seenTypes[id] {
			e.add(fmt.Sprintf("document_types_id[%d]", i), "duplicate document type id %q", id)
		}
		seenTypes[id] = true
	}

	seenRules := make(map[string]bool, len(app.ValidationRules))
	for i, r := range app.ValidationRules {
		path := fmt.Sprintf("validation_rules[%d]", i)
		if r.ID == "" {
			e.add(path+".id", "id is required")
		}
		if seenRules[r.ID] {
			e.add(path+".id", "duplicate rule id %q", r.ID)
		}
		seenRules[r.ID] = true
		if !domain.KnownRuleTypes[r.Type] {
			e.add(path+".type", "unknown rule type %q", r.Type)
			continue
		}
		if r.Type == domain.RuleTypeField {
			if r.DocumentTypeID == "" {
				e.add(path+".document_type_id", "field rules must name a document type")
			}
			if r.DocumentField == "" {
				e.add(path+".document_field", "field rules must name a document field")
			}
		}
	}

	return e.orNil()
}
