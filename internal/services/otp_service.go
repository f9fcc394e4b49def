package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes are persisted in the
// relational store; Redis only tracks the per-email resend window.
type OTPServiceImpl struct {
	codeRepo        domain.VerificationCodeRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(codeRepo domain.VerificationCodeRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		codeRepo:        codeRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

// Issue implements domain.OTPService
func (s *OTPServiceImpl) Issue(ctx context.Context, email string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	if err := s.checkResendWindow(ctx, email, purpose); err != nil {
		return nil, err
	}

	code, err := GenerateCode(s.config.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &domain.VerificationCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.codeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist verification code: %w", err)
	}

	// The stored code stays valid even when delivery fails; the caller may
	// retry sending without invalidating it.
	if err := s.notificationSvc.SendOTPEmail(ctx, email, code); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOTPDelivery, err)
	}

	return record, nil
}

// Check implements domain.OTPService
func (s *OTPServiceImpl) Check(ctx context.Context, email, code string, purpose domain.VerificationPurpose) error {
	record, err := s.codeRepo.Find(ctx, email, code, purpose)
	if err != nil {
		return err
	}

	// A code is valid only strictly before its expiry instant
	if !time.Now().Before(record.ExpiresAt) {
		return domain.ErrOTPExpired
	}

	return nil
}

// checkResendWindow enforces a minimum interval between sends to the same
// address. A nil redis client or zero window disables throttling.
func (s *OTPServiceImpl) checkResendWindow(ctx context.Context, email string, purpose domain.VerificationPurpose) error {
	if s.redisClient == nil || s.config.ResendWindow <= 0 {
		return nil
	}

	key := fmt.Sprintf("otp:res:%s:%s", purpose, email)
	ok, err := s.redisClient.SetNX(ctx, key, 1, s.config.ResendWindow).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend window: %w", err)
	}
	if !ok {
		return domain.ErrOTPResendLimit
	}
	return nil
}

// GenerateCode produces a fixed-length numeric code drawn uniformly at
// random; leading zeros are allowed.
func GenerateCode(length int) (string, error) {
	digits := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
