package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockRoleService implements domain.RoleService for testing
type MockRoleService struct {
	ClientRoleIDFunc func(ctx context.Context) (uint, error)
}

var _ domain.RoleService = (*MockRoleService)(nil)

func NewMockRoleService() *MockRoleService {
	return &MockRoleService{}
}

func (m *MockRoleService) ClientRoleID(ctx context.Context) (uint, error) {
	if m.ClientRoleIDFunc != nil {
		return m.ClientRoleIDFunc(ctx)
	}
	return 1, nil
}
