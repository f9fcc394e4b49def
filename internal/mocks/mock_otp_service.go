package mocks

import (
	"context"
	"time"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc func(ctx context.Context, email string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
	CheckFunc func(ctx context.Context, email, code string, purpose domain.VerificationPurpose) error
}

var _ domain.OTPService = (*MockOTPService)(nil)

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, email string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, purpose)
	}
	return &domain.VerificationCode{
		ID:        1,
		Email:     email,
		Code:      "123456",
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *MockOTPService) Check(ctx context.Context, email, code string, purpose domain.VerificationPurpose) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, email, code, purpose)
	}
	return nil
}
