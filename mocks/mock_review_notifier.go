package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docboard/internal/domain"
)

// MockReviewNotifier is a mock implementation of port.ReviewNotifier.
type MockReviewNotifier struct {
	mock.Mock
}

func (m *MockReviewNotifier) SendReviewOutcome(ctx context.Context, toEmail string, doc *domain.ReviewDocument) error {
	args := m.Called(ctx, toEmail, doc)
	return args.Error(0)
}
