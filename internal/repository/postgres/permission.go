package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// PostgresPermissionRepository implements the PermissionRepository interface
type PostgresPermissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(config *RepositoryConfig) repositories.PermissionRepository {
	return &PostgresPermissionRepository{pool: config.Pool}
}

// Grant inserts a permission row
func (r *PostgresPermissionRepository) Grant(ctx context.Context, perm *models.Permission) error {
	query := `
		INSERT INTO permissions (user_id, folder_id, read, modify, edit)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id
	`

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		perm.UserID,
		perm.FolderID,
		perm.Read,
		perm.Modify,
		perm.Edit,
	).Scan(&perm.ID)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("permission for user %s: %w", perm.UserID, domain.ErrConflict)
		}
		return fmt.Errorf("grant permission: %w", domainDB(err))
	}

	return nil
}

// Get retrieves the permission row for (user, folder). All three capability
// bits come back in one fixed query; capability names never reach SQL.
func (r *PostgresPermissionRepository) Get(ctx context.Context, userID string, folderID *string) (*models.Permission, error) {
	query := `
		SELECT id, user_id, folder_id, read, modify, edit
		FROM permissions
		WHERE user_id = $1::uuid AND folder_id IS NOT DISTINCT FROM $2::uuid
	`

	var perm models.Permission
	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query, userID, folderID).Scan(
		&perm.ID,
		&perm.UserID,
		&perm.FolderID,
		&perm.Read,
		&perm.Modify,
		&perm.Edit,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // no row means no capabilities, not an error
		}
		return nil, fmt.Errorf("get permission: %w", domainDB(err))
	}

	return &perm, nil
}
