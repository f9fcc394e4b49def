package mocks

import (
	"time"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	SignAccessTokenFunc    func(userID, deviceID, roleID uint, roleName string) (string, error)
	SignRefreshTokenFunc   func(userID uint) (string, error)
	VerifyAccessTokenFunc  func(token string) (*domain.AccessTokenClaims, error)
	VerifyRefreshTokenFunc func(token string) (*domain.RefreshTokenClaims, error)
	DecodeRefreshTokenFunc func(token string) (*domain.RefreshTokenClaims, error)
}

var _ domain.TokenService = (*MockTokenService)(nil)

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) SignAccessToken(userID, deviceID, roleID uint, roleName string) (string, error) {
	if m.SignAccessTokenFunc != nil {
		return m.SignAccessTokenFunc(userID, deviceID, roleID, roleName)
	}
	return "mock_access_token", nil
}

func (m *MockTokenService) SignRefreshToken(userID uint) (string, error) {
	if m.SignRefreshTokenFunc != nil {
		return m.SignRefreshTokenFunc(userID)
	}
	return "mock_refresh_token", nil
}

func (m *MockTokenService) VerifyAccessToken(token string) (*domain.AccessTokenClaims, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(token)
	}
	now := time.Now()
	return &domain.AccessTokenClaims{
		UserID:    1,
		DeviceID:  1,
		RoleID:    1,
		RoleName:  domain.RoleNameClient,
		TokenID:   "mock-token-id",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	}, nil
}

func (m *MockTokenService) VerifyRefreshToken(token string) (*domain.RefreshTokenClaims, error) {
	if m.VerifyRefreshTokenFunc != nil {
		return m.VerifyRefreshTokenFunc(token)
	}
	now := time.Now()
	return &domain.RefreshTokenClaims{
		UserID:    1,
		TokenID:   "mock-token-id",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(7 * 24 * time.Hour).Unix(),
	}, nil
}

func (m *MockTokenService) DecodeRefreshToken(token string) (*domain.RefreshTokenClaims, error) {
	if m.DecodeRefreshTokenFunc != nil {
		return m.DecodeRefreshTokenFunc(token)
	}
	return m.VerifyRefreshToken(token)
}
