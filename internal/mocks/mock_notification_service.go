package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendOTPEmailFunc func(ctx context.Context, email, code string) error
}

var _ domain.NotificationService = (*MockNotificationService)(nil)

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendOTPEmail(ctx context.Context, email, code string) error {
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(ctx, email, code)
	}
	return nil
}
