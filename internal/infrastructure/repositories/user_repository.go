package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;size:255"`
	Name         string  `gorm:"size:100"`
	PasswordHash string  `gorm:"column:password"`
	PhoneNumber  string  `gorm:"size:32"`
	Avatar       *string `gorm:"size:512"`
	TOTPSecret   *string `gorm:"column:totp_secret;size:128"`
	Status       string  `gorm:"index;size:16"`
	RoleID       uint    `gorm:"index"`
	CreatedByID  *uint
	UpdatedByID  *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The email column is stored
// lowercase so the unique index treats casings of one mailbox as equal.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	dbUser.Email = strings.ToLower(dbUser.Email)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	user.Email = dbUser.Email
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByEmailWithRole implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmailWithRole(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var dbRole DBRole
	if err := r.db.WithContext(ctx).Where("id = ?", user.RoleID).First(&dbRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}

	user.RoleName = dbRole.Name
	return user, nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		PhoneNumber:  user.PhoneNumber,
		Avatar:       user.Avatar,
		TOTPSecret:   user.TOTPSecret,
		Status:       string(user.Status),
		RoleID:       user.RoleID,
		CreatedByID:  user.CreatedByID,
		UpdatedByID:  user.UpdatedByID,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		PhoneNumber:  dbUser.PhoneNumber,
		Avatar:       dbUser.Avatar,
		TOTPSecret:   dbUser.TOTPSecret,
		Status:       domain.UserStatus(dbUser.Status),
		RoleID:       dbUser.RoleID,
		CreatedByID:  dbUser.CreatedByID,
		UpdatedByID:  dbUser.UpdatedByID,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
	if dbUser.DeletedAt.Valid {
		t := dbUser.DeletedAt.Time
		user.DeletedAt = &t
	}
	return user
}

// isUniqueViolation recognizes unique-index violations across the drivers we
// run against (postgres in production, sqlite in tests).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
