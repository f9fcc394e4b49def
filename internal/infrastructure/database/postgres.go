package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EpicVN/ecommerce-auth/domain"
	"github.com/EpicVN/ecommerce-auth/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBRole{},
		&repositories.DBUser{},
		&repositories.DBVerificationCode{},
		&repositories.DBDevice{},
		&repositories.DBRefreshToken{},
	); err != nil {
		return fmt.Errorf("failed to migrate auth tables: %w", err)
	}

	return nil
}

// SeedRoles inserts the well-known roles when they are absent
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{domain.RoleNameClient, "Admin"} {
		role := repositories.DBRole{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	return nil
}
