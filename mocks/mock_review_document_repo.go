package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docboard/internal/domain"
)

// MockReviewDocumentRepo is a mock implementation of port.ReviewDocumentRepository.
type MockReviewDocumentRepo struct {
	mock.Mock
}

func (m *MockReviewDocumentRepo) ListPending(ctx context.Context, offset, limit int) ([]domain.ReviewDocument, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewDocument), args.Int(1), args.Error(2)
}

func (m *MockReviewDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewDocument), args.Error(1)
}

func (m *MockReviewDocumentRepo) Create(ctx context.Context, doc *domain.ReviewDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReviewDocumentRepo) UpdateOutcome(ctx context.Context, doc *domain.ReviewDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReviewDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
