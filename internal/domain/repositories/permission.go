package repositories

import (
	"context"

	"lempek/internal/domain/models"
)

// PermissionRepository defines data access operations for permission rows
type PermissionRepository interface {
	// Grant inserts a permission row
	Grant(ctx context.Context, perm *models.Permission) error

	// Get retrieves the permission row for (user, folder); nil folderID
	// addresses the root namespace. A missing row returns (nil, nil) -
	// absence means "no capabilities", not an error.
	Get(ctx context.Context, userID string, folderID *string) (*models.Permission, error)
}
