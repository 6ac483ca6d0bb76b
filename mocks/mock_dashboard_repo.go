package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docboard/internal/domain"
)

// MockDashboardRepo is a mock implementation of port.DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) ListByOrganization(ctx context.Context, orgUUID uuid.UUID) ([]domain.DashboardProject, error) {
	args := m.Called(ctx, orgUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DashboardProject), args.Error(1)
}

func (m *MockDashboardRepo) Create(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error {
	args := m.Called(ctx, orgUUID, project)
	return args.Error(0)
}

func (m *MockDashboardRepo) Update(ctx context.Context, orgUUID uuid.UUID, project *domain.DashboardProject) error {
	args := m.Called(ctx, orgUUID, project)
	return args.Error(0)
}

func (m *MockDashboardRepo) Delete(ctx context.Context, orgUUID, projectUUID uuid.UUID) error {
	args := m.Called(ctx, orgUUID, projectUUID)
	return args.Error(0)
}
