package noop

import (
	"context"
	"log"

	"docboard/internal/domain"
	"docboard/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op ReviewNotifier that logs outcomes to stdout.
func NewNoopNotifier() port.ReviewNotifier {
	return &noopNotifier{}
}

func (s *noopNotifier) SendReviewOutcome(_ context.Context, toEmail string, doc *domain.ReviewDocument) error {
	log.Printf("[NOOP EMAIL] Review outcome %s for %s (%s) to %s", doc.State, doc.FileName, doc.ID, toEmail)
	return nil
}
