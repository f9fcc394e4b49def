package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/EpicVN/ecommerce-auth/domain"
)

func TestRoleRepositoryFindByName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedRole(t, db, domain.RoleNameClient)
	repo := NewRoleRepository(db)

	role, err := repo.FindByName(ctx, domain.RoleNameClient)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if role.ID == 0 || role.Name != domain.RoleNameClient {
		t.Errorf("unexpected role: %+v", role)
	}

	if _, err := repo.FindByName(ctx, "Missing"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
