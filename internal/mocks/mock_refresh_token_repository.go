package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) error
	FindWithUserRoleFunc func(ctx context.Context, token string) (*domain.RefreshToken, *domain.User, error)
	DeleteReturningFunc  func(ctx context.Context, token string) (*domain.RefreshToken, error)
}

var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *MockRefreshTokenRepository) FindWithUserRole(ctx context.Context, token string) (*domain.RefreshToken, *domain.User, error) {
	if m.FindWithUserRoleFunc != nil {
		return m.FindWithUserRoleFunc(ctx, token)
	}
	return nil, nil, domain.ErrTokenRevoked
}

func (m *MockRefreshTokenRepository) DeleteReturning(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.DeleteReturningFunc != nil {
		return m.DeleteReturningFunc(ctx, token)
	}
	return nil, domain.ErrTokenRevoked
}
