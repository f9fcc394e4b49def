package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&DBRole{}, &DBUser{}, &DBVerificationCode{}, &DBDevice{}, &DBRefreshToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// seedRole inserts a role row and returns its id
func seedRole(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	role := DBRole{Name: name}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}
	return role.ID
}
