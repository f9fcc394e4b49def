package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// VerificationCodeRepositoryImpl implements domain.VerificationCodeRepository using GORM
type VerificationCodeRepositoryImpl struct {
	db *gorm.DB
}

// DBVerificationCode represents the database model for VerificationCode
type DBVerificationCode struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"index:idx_email_code_purpose;size:255"`
	Code      string `gorm:"index:idx_email_code_purpose;size:16"`
	Purpose   string `gorm:"index:idx_email_code_purpose;size:32"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBVerificationCode) TableName() string {
	return "verification_codes"
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB) domain.VerificationCodeRepository {
	return &VerificationCodeRepositoryImpl{db: db}
}

// Create implements domain.VerificationCodeRepository. Each send creates a
// new row; prior unexpired codes for the same email/purpose stay valid.
func (r *VerificationCodeRepositoryImpl) Create(ctx context.Context, code *domain.VerificationCode) error {
	dbCode := &DBVerificationCode{
		Email:     code.Email,
		Code:      code.Code,
		Purpose:   string(code.Purpose),
		ExpiresAt: code.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.ID = dbCode.ID
	code.CreatedAt = dbCode.CreatedAt
	return nil
}

// Find implements domain.VerificationCodeRepository
func (r *VerificationCodeRepositoryImpl) Find(ctx context.Context, email, code string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error) {
	var dbCode DBVerificationCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND purpose = ?", email, code, string(purpose)).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}

	return &domain.VerificationCode{
		ID:        dbCode.ID,
		Email:     dbCode.Email,
		Code:      dbCode.Code,
		Purpose:   domain.VerificationPurpose(dbCode.Purpose),
		ExpiresAt: dbCode.ExpiresAt,
		CreatedAt: dbCode.CreatedAt,
	}, nil
}
