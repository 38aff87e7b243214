package services

import (
	"context"

	"lempek/internal/domain/models"
)

// PermissionGate answers "can this principal perform this capability on this
// folder". Admin principals always pass. There is no inheritance: a grant on
// a parent folder says nothing about its children. Every folder that should
// be accessible carries its own permission row.
type PermissionGate interface {
	// Require returns nil if the principal holds the capability on the
	// folder (nil folderID = root namespace) and domain.ErrForbidden
	// otherwise. A missing permission row counts as all capabilities false.
	Require(ctx context.Context, principal *models.Principal, folderID *string, capability models.Capability) error
}
