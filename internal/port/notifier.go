package port

import (
	"context"

	"docboard/internal/domain"
)

// ReviewNotifier delivers review outcome notifications. Failures are logged
// and never block the review transition itself.
type ReviewNotifier interface {
	SendReviewOutcome(ctx context.Context, toEmail string, doc *domain.ReviewDocument) error
}
