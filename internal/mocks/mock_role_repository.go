package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockRoleRepository implements domain.RoleRepository for testing
type MockRoleRepository struct {
	FindByNameFunc func(ctx context.Context, name string) (*domain.Role, error)
}

var _ domain.RoleRepository = (*MockRoleRepository)(nil)

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{}
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return &domain.Role{ID: 1, Name: name}, nil
}
