package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/EpicVN/ecommerce-auth/domain"
	"github.com/EpicVN/ecommerce-auth/internal/mocks"
)

func TestGenerateCode(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateCode(length)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != length {
			t.Errorf("expected length %d, got %d", length, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Errorf("non-digit %q in code %q", r, code)
			}
		}
	}
}

func TestOTPIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and sends a code", func(t *testing.T) {
		codeRepo := mocks.NewMockVerificationCodeRepository()
		notif := mocks.NewMockNotificationService()

		var stored *domain.VerificationCode
		codeRepo.CreateFunc = func(ctx context.Context, code *domain.VerificationCode) error {
			stored = code
			return nil
		}
		var sentCode string
		notif.SendOTPEmailFunc = func(ctx context.Context, email, code string) error {
			sentCode = code
			return nil
		}

		svc := NewOTPService(codeRepo, notif, nil, OTPConfig{Length: 6, TTL: 5 * time.Minute})
		record, err := svc.Issue(ctx, "user@example.com", domain.PurposeRegister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored == nil || stored.Code != record.Code {
			t.Fatalf("code not persisted: %+v", stored)
		}
		if sentCode != record.Code {
			t.Errorf("sent %q, stored %q", sentCode, record.Code)
		}
		if len(record.Code) != 6 {
			t.Errorf("expected 6-digit code, got %q", record.Code)
		}
		remaining := time.Until(record.ExpiresAt)
		if remaining < 4*time.Minute || remaining > 5*time.Minute {
			t.Errorf("unexpected expiry window: %v", remaining)
		}
	})

	t.Run("delivery failure wraps ErrOTPDelivery", func(t *testing.T) {
		codeRepo := mocks.NewMockVerificationCodeRepository()
		notif := mocks.NewMockNotificationService()
		notif.SendOTPEmailFunc = func(ctx context.Context, email, code string) error {
			return errors.New("smtp timeout")
		}

		svc := NewOTPService(codeRepo, notif, nil, OTPConfig{Length: 6, TTL: 5 * time.Minute})
		_, err := svc.Issue(ctx, "user@example.com", domain.PurposeRegister)
		if !errors.Is(err, domain.ErrOTPDelivery) {
			t.Fatalf("expected ErrOTPDelivery, got %v", err)
		}
	})

	t.Run("second send inside the window is throttled", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		codeRepo := mocks.NewMockVerificationCodeRepository()
		notif := mocks.NewMockNotificationService()
		svc := NewOTPService(codeRepo, notif, rdb, OTPConfig{Length: 6, TTL: 5 * time.Minute, ResendWindow: time.Minute})

		if _, err := svc.Issue(ctx, "user@example.com", domain.PurposeRegister); err != nil {
			t.Fatalf("first send: %v", err)
		}
		if _, err := svc.Issue(ctx, "user@example.com", domain.PurposeRegister); !errors.Is(err, domain.ErrOTPResendLimit) {
			t.Fatalf("expected ErrOTPResendLimit, got %v", err)
		}

		// A different address is unaffected
		if _, err := svc.Issue(ctx, "other@example.com", domain.PurposeRegister); err != nil {
			t.Fatalf("other address: %v", err)
		}

		// The window reopens once the key expires
		mr.FastForward(2 * time.Minute)
		if _, err := svc.Issue(ctx, "user@example.com", domain.PurposeRegister); err != nil {
			t.Fatalf("after window: %v", err)
		}
	})
}

func TestOTPCheck(t *testing.T) {
	ctx := context.Background()

	newSvc := func(record *domain.VerificationCode, findErr error) domain.OTPService {
		codeRepo := mocks.NewMockVerificationCodeRepository()
		codeRepo.FindFunc = func(ctx context.Context, email, code string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
			if findErr != nil {
				return nil, findErr
			}
			return record, nil
		}
		return NewOTPService(codeRepo, mocks.NewMockNotificationService(), nil, OTPConfig{Length: 6, TTL: 5 * time.Minute})
	}

	tests := []struct {
		name    string
		record  *domain.VerificationCode
		findErr error
		wantErr error
	}{
		{
			name:   "valid code",
			record: &domain.VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)},
		},
		{
			name:    "unknown code",
			findErr: domain.ErrOTPInvalid,
			wantErr: domain.ErrOTPInvalid,
		},
		{
			name:    "expired code",
			record:  &domain.VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(-time.Second)},
			wantErr: domain.ErrOTPExpired,
		},
		{
			name:    "expiry instant itself is rejected",
			record:  &domain.VerificationCode{Code: "123456", ExpiresAt: time.Now()},
			wantErr: domain.ErrOTPExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newSvc(tt.record, tt.findErr)
			err := svc.Check(ctx, "user@example.com", "123456", domain.PurposeRegister)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
