package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/EpicVN/ecommerce-auth/domain"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	roleID := seedRole(t, db, domain.RoleNameClient)
	repo := NewUserRepository(db)

	user := &domain.User{
		Email:        "user@example.com",
		Name:         "Jane",
		PasswordHash: "hashed",
		PhoneNumber:  "555123456",
		Status:       domain.UserStatusActive,
		RoleID:       roleID,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned id")
	}

	found, err := repo.FindByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != user.ID || found.PasswordHash != "hashed" || found.Status != domain.UserStatusActive {
		t.Errorf("unexpected user: %+v", found)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != "user@example.com" {
		t.Errorf("unexpected user: %+v", byID)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	roleID := seedRole(t, db, domain.RoleNameClient)
	repo := NewUserRepository(db)

	first := &domain.User{Email: "user@example.com", Status: domain.UserStatusActive, RoleID: roleID}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := &domain.User{Email: "user@example.com", Status: domain.UserStatusActive, RoleID: roleID}
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUserRepositoryEmailCasing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	roleID := seedRole(t, db, domain.RoleNameClient)
	repo := NewUserRepository(db)

	first := &domain.User{Email: "User@Example.com", Status: domain.UserStatusActive, RoleID: roleID}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Email != "user@example.com" {
		t.Errorf("email not stored lowercase: %q", first.Email)
	}

	// One mailbox, different casing: still a duplicate
	second := &domain.User{Email: "user@example.com", Status: domain.UserStatusActive, RoleID: roleID}
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	// Lookups are casing-insensitive too
	found, err := repo.FindByEmail(ctx, "USER@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("expected user %d, got %d", first.ID, found.ID)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryFindByEmailWithRole(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	roleID := seedRole(t, db, domain.RoleNameClient)
	repo := NewUserRepository(db)

	user := &domain.User{Email: "user@example.com", Status: domain.UserStatusActive, RoleID: roleID}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByEmailWithRole(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("find with role: %v", err)
	}
	if found.RoleName != domain.RoleNameClient {
		t.Errorf("expected role name %q, got %q", domain.RoleNameClient, found.RoleName)
	}
}
