package services

import (
	"context"
	"sync"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// RoleServiceImpl implements domain.RoleService with a single-assignment
// cache of the default client role id. Roles are immutable at runtime, so a
// redundant concurrent first fetch is harmless.
type RoleServiceImpl struct {
	roleRepo domain.RoleRepository

	mu           sync.Mutex
	clientRoleID uint
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo domain.RoleRepository) *RoleServiceImpl {
	return &RoleServiceImpl{roleRepo: roleRepo}
}

// ClientRoleID implements domain.RoleService
func (s *RoleServiceImpl) ClientRoleID(ctx context.Context) (uint, error) {
	s.mu.Lock()
	cached := s.clientRoleID
	s.mu.Unlock()
	if cached != 0 {
		return cached, nil
	}

	role, err := s.roleRepo.FindByName(ctx, domain.RoleNameClient)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.clientRoleID = role.ID
	s.mu.Unlock()

	return role.ID, nil
}
