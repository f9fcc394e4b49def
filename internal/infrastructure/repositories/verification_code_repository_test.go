package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EpicVN/ecommerce-auth/domain"
)

func TestVerificationCodeRepositoryFind(t *testing.T) {
	ctx := context.Background()
	repo := NewVerificationCodeRepository(newTestDB(t))

	code := &domain.VerificationCode{
		Email:     "user@example.com",
		Code:      "123456",
		Purpose:   domain.PurposeRegister,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatalf("create: %v", err)
	}
	if code.ID == 0 {
		t.Fatal("expected assigned id")
	}

	found, err := repo.Find(ctx, "user@example.com", "123456", domain.PurposeRegister)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Code != "123456" || found.Purpose != domain.PurposeRegister {
		t.Errorf("unexpected code: %+v", found)
	}
}

func TestVerificationCodeRepositoryMismatch(t *testing.T) {
	ctx := context.Background()
	repo := NewVerificationCodeRepository(newTestDB(t))

	code := &domain.VerificationCode{
		Email:     "user@example.com",
		Code:      "123456",
		Purpose:   domain.PurposeRegister,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name    string
		email   string
		code    string
		purpose domain.VerificationPurpose
	}{
		{"wrong code", "user@example.com", "654321", domain.PurposeRegister},
		{"wrong email", "other@example.com", "123456", domain.PurposeRegister},
		{"wrong purpose", "user@example.com", "123456", domain.PurposeForgotPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Find(ctx, tt.email, tt.code, tt.purpose); !errors.Is(err, domain.ErrOTPInvalid) {
				t.Fatalf("expected ErrOTPInvalid, got %v", err)
			}
		})
	}
}

func TestVerificationCodeRepositoryKeepsPriorCodes(t *testing.T) {
	ctx := context.Background()
	repo := NewVerificationCodeRepository(newTestDB(t))

	for _, c := range []string{"111111", "222222"} {
		code := &domain.VerificationCode{
			Email:     "user@example.com",
			Code:      c,
			Purpose:   domain.PurposeRegister,
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
		if err := repo.Create(ctx, code); err != nil {
			t.Fatalf("create %s: %v", c, err)
		}
	}

	// Both codes remain redeemable; issuing a new one does not void the old
	for _, c := range []string{"111111", "222222"} {
		if _, err := repo.Find(ctx, "user@example.com", c, domain.PurposeRegister); err != nil {
			t.Errorf("find %s: %v", c, err)
		}
	}
}
