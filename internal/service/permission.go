package service

import (
	"context"
	"fmt"

	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
	"lempek/internal/domain/services"
)

// permissionGate implements services.PermissionGate on top of the
// permission rows. Only the exact (user, folder) row is consulted;
// grants on ancestors carry no weight.
type permissionGate struct {
	perms repositories.PermissionRepository
}

// NewPermissionGate creates the capability check used by every tree mutation
func NewPermissionGate(perms repositories.PermissionRepository) services.PermissionGate {
	return &permissionGate{perms: perms}
}

func (g *permissionGate) Require(ctx context.Context, principal *models.Principal, folderID *string, capability models.Capability) error {
	if principal == nil {
		return domain.ErrUnauthorized
	}
	if principal.Admin {
		return nil
	}

	perm, err := g.perms.Get(ctx, principal.UserID, folderID)
	if err != nil {
		return fmt.Errorf("check permission: %w", err)
	}

	if !perm.Allows(capability) {
		return &domain.ForbiddenError{Capability: capability.String()}
	}

	return nil
}
