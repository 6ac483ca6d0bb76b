package validation

import (
	"fmt"

	"github.com/google/uuid"

	"docboard/internal/domain"
)

// Organization validates a full organization entity. Partial updates must be
// merged into the full entity first: uniqueness of message uuids and the
// closed step-key set are cross-field invariants that a changed slice alone
// cannot establish.
func Organization(org *domain.Organization) *Error {
	if org == nil {
		panic("validation: nil organization")
	}
	e := &Error{}

	if org.Name == "" {
		e.add("name", "name is required")
	}
	if org.Logo == "" {
		e.add("logo", "logo is required")
	}

	seenCategories := make(map[string]bool, len(org.Categories))
	for i, c := range org.Categories {
		if seenCategories[c] {
			e.add(fmt.Sprintf("categories[%d]", i), "duplicate category %q", c)
		}
		seenCategories[c] = true
	}
	if org.CurrentCategory != "" && !seenCategories[org.CurrentCategory] {
		e.add("current_category", "category %q is not in categories", org.CurrentCategory)
	}
	if org.CurrentStep < 0 {
		e.add("current_step", "step index must not be negative")
	}

	// Message uuids are unique org-wide, not merely per step.
	seenMessages := make(map[uuid.UUID]string)
	for key, steps := range org.Steps {
		if !domain.SupportedDocTypeKeys[key] {
			e.add(fmt.Sprintf("steps[%s]", key), "unsupported document type key")
			continue
		}
		for si, step := range steps {
			for mi, msg := range step.ChatMessages {
				path := fmt.Sprintf("steps[%s][%d].chat_messages[%d]", key, si, mi)
				if first, dup := seenMessages[msg.UUID]; dup {
					e.add(path+".uuid", "duplicate message uuid %s (first seen at %s)", msg.UUID, first)
				} else {
					seenMessages[msg.UUID] = path
				}
				validateMessage(e, path, &msg)
			}
		}
	}

	return e.orNil()
}

func validateMessage(e *Error, path string, msg *domain.Message) {
	if msg.Sender != domain.SenderBot && msg.Sender != domain.SenderUser {
		e.add(path+".sender", "sender must be %q or %q", domain.SenderBot, domain.SenderUser)
	}
	if msg.CreatedAt == "" {
		e.add(path+".created_at", "created_at is required")
	}
	if msg.StatusIndex < 0 || (len(msg.Statuses) > 0 && msg.StatusIndex >= len(msg.Statuses)) {
		e.add(path+".status_index", "status index %d out of range [0, %d)", msg.StatusIndex, len(msg.Statuses))
	}
}

// StepPatch validates replacing one document-type pipeline on an existing
// organization. The patched steps are merged into a copy of the full entity
// and the whole thing revalidated.
func StepPatch(org *domain.Organization, key domain.DocTypeKey, steps []domain.FileMetadataStep) *Error {
	if org == nil {
		panic("validation: nil organization")
	}
	merged := *org
	merged.Steps = make(map[domain.DocTypeKey][]domain.FileMetadataStep, len(org.Steps)+1)
	for k, v := range org.Steps {
		merged.Steps[k] = v
	}
	merged.Steps[key] = steps
	return Organization(&merged)
}
