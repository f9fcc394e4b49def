package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockVerificationCodeRepository implements domain.VerificationCodeRepository for testing
type MockVerificationCodeRepository struct {
	CreateFunc func(ctx context.Context, code *domain.VerificationCode) error
	FindFunc   func(ctx context.Context, email, code string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
}

var _ domain.VerificationCodeRepository = (*MockVerificationCodeRepository)(nil)

func NewMockVerificationCodeRepository() *MockVerificationCodeRepository {
	return &MockVerificationCodeRepository{}
}

func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	return nil
}

func (m *MockVerificationCodeRepository) Find(ctx context.Context, email, code string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, email, code, purpose)
	}
	return nil, domain.ErrOTPInvalid
}
