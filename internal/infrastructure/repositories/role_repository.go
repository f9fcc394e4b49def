package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// RoleRepositoryImpl implements domain.RoleRepository using GORM
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// DBRole represents the database model for Role
type DBRole struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64"`
	Description string `gorm:"size:255"`
	IsActive    bool   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBRole) TableName() string {
	return "roles"
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// FindByName implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var dbRole DBRole
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dbRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}

	return &domain.Role{
		ID:          dbRole.ID,
		Name:        dbRole.Name,
		Description: dbRole.Description,
		IsActive:    dbRole.IsActive,
		CreatedAt:   dbRole.CreatedAt,
		UpdatedAt:   dbRole.UpdatedAt,
	}, nil
}
