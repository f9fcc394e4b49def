package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using GORM
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken. The signed
// token string is the primary key.
type DBRefreshToken struct {
	Token     string `gorm:"primaryKey;size:1024"`
	UserID    uint   `gorm:"index"`
	DeviceID  uint   `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	dbToken := &DBRefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		DeviceID:  token.DeviceID,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindWithUserRole implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindWithUserRole(ctx context.Context, token string) (*domain.RefreshToken, *domain.User, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown token string: already redeemed or never issued
			return nil, nil, domain.ErrTokenRevoked
		}
		return nil, nil, err
	}

	var dbUser DBUser
	if err := r.db.WithContext(ctx).Where("id = ?", dbToken.UserID).First(&dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	var dbRole DBRole
	if err := r.db.WithContext(ctx).Where("id = ?", dbUser.RoleID).First(&dbRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrRoleNotFound
		}
		return nil, nil, err
	}

	user := (&UserRepositoryImpl{db: r.db}).dbToDomain(&dbUser)
	user.RoleName = dbRole.Name

	return r.dbToDomain(&dbToken), user, nil
}

// DeleteReturning implements domain.RefreshTokenRepository. The row is read
// first (token rows are immutable, so the snapshot cannot go stale), then
// removed with a conditional delete. Under concurrent redemption only one
// caller's delete affects a row; everyone else gets ErrTokenRevoked.
func (r *RefreshTokenRepositoryImpl) DeleteReturning(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenRevoked
		}
		return nil, err
	}

	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBRefreshToken{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrTokenRevoked
	}

	return r.dbToDomain(&dbToken), nil
}

func (r *RefreshTokenRepositoryImpl) dbToDomain(dbToken *DBRefreshToken) *domain.RefreshToken {
	return &domain.RefreshToken{
		Token:     dbToken.Token,
		UserID:    dbToken.UserID,
		DeviceID:  dbToken.DeviceID,
		ExpiresAt: dbToken.ExpiresAt,
		CreatedAt: dbToken.CreatedAt,
	}
}
