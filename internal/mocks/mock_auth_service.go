package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockAuthService implements domain.AuthService for testing handlers
type MockAuthService struct {
	SendOTPFunc        func(ctx context.Context, email string, purpose domain.VerificationPurpose) error
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.PublicUser, error)
	LoginFunc          func(ctx context.Context, email, password, userAgent, ip string) (*domain.TokenPair, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken, userAgent, ip string) (*domain.TokenPair, error)
	LogoutFunc         func(ctx context.Context, refreshToken string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.PublicUser, error)
}

var _ domain.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) SendOTP(ctx context.Context, email string, purpose domain.VerificationPurpose) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.PublicUser, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.PublicUser{ID: 1, Email: input.Email, Name: input.Name}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password, userAgent, ip string) (*domain.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, userAgent, ip)
	}
	return &domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"}, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken, userAgent, ip string) (*domain.TokenPair, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken, userAgent, ip)
	}
	return &domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.PublicUser, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.PublicUser{ID: userID, Email: "user@example.com"}, nil
}
