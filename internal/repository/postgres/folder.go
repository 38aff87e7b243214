package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// maxPathDepth bounds the parent-chain walk. The write path keeps the tree
// acyclic, so hitting the bound means the table is corrupted; the walk
// reports that instead of looping forever.
const maxPathDepth = 128

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{pool: config.Pool}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (parent_id, owner_id, name)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id, created_at, updated_at
	`

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		folder.ParentID,
		folder.OwnerID,
		folder.Name,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Resource: "folder", Name: folder.Name}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", domainDB(err))
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `
		SELECT id, parent_id, owner_id, name, created_at, updated_at
		FROM folders
		WHERE id = $1::uuid
	`

	var folder models.Folder
	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.OwnerID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", domainDB(err))
	}

	return &folder, nil
}

// Rename updates a folder's name
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, name string) error {
	query := `
		UPDATE folders
		SET name = $1, updated_at = NOW()
		WHERE id = $2::uuid
	`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, name, id)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Resource: "folder", Name: name}
		}
		return fmt.Errorf("rename folder: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder. Descendant folders, their files and all related
// permission rows go with it through the schema's ON DELETE CASCADE.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM folders WHERE id = $1::uuid`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders without a permission filter
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, order models.ListOrder) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, owner_id, name, created_at, updated_at
		FROM folders
		WHERE parent_id IS NOT DISTINCT FROM $1::uuid
		ORDER BY %s
	`, orderClause(order))

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ListChildrenFor lists immediate child folders carrying a read grant for the user
func (r *PostgresFolderRepository) ListChildrenFor(ctx context.Context, userID string, parentID *string, order models.ListOrder) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.parent_id, f.owner_id, f.name, f.created_at, f.updated_at
		FROM folders f
		JOIN permissions p ON p.folder_id IS NOT DISTINCT FROM f.id
		WHERE p.user_id = $1::uuid
		  AND p.read = TRUE
		  AND f.parent_id IS NOT DISTINCT FROM $2::uuid
		ORDER BY f.%s
	`, orderClause(order))

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ListAll retrieves every folder (flat list)
func (r *PostgresFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	query := `
		SELECT id, parent_id, owner_id, name, created_at, updated_at
		FROM folders
		ORDER BY name ASC
	`

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all folders: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ListAllFor retrieves every folder carrying a read grant for the user
func (r *PostgresFolderRepository) ListAllFor(ctx context.Context, userID string) ([]models.Folder, error) {
	query := `
		SELECT f.id, f.parent_id, f.owner_id, f.name, f.created_at, f.updated_at
		FROM folders f
		JOIN permissions p ON p.folder_id IS NOT DISTINCT FROM f.id
		WHERE p.user_id = $1::uuid
		  AND p.read = TRUE
		ORDER BY f.name ASC
	`

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all folders: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ResolvePath walks parent links from the folder to the root and joins the
// collected names root-to-leaf with '/'. The walk runs on the context
// executor, so inside a transaction it observes uncommitted renames.
func (r *PostgresFolderRepository) ResolvePath(ctx context.Context, folderID *string) (string, error) {
	if folderID == nil {
		return "", nil
	}

	db := GetExecutor(ctx, r.pool)
	query := `SELECT name, parent_id FROM folders WHERE id = $1::uuid`

	names := make([]string, 0, 8)
	next := folderID
	for depth := 0; next != nil; depth++ {
		if depth >= maxPathDepth {
			return "", fmt.Errorf("folder %s: parent chain exceeds %d levels, tree is corrupted: %w", *folderID, maxPathDepth, domain.ErrDatabase)
		}

		var name string
		var parentID *string
		err := db.QueryRow(ctx, query, *next).Scan(&name, &parentID)
		if err != nil {
			if isPgNoRowsError(err) {
				if depth == 0 {
					return "", fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
				}
				// a parent link pointing at a missing row is corruption, not absence
				return "", fmt.Errorf("folder %s: broken parent chain at %s: %w", *folderID, *next, domain.ErrDatabase)
			}
			return "", fmt.Errorf("resolve path: %w", domainDB(err))
		}

		names = append(names, name)
		next = parentID
	}

	// collected leaf-to-root, flip to root-to-leaf
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return strings.Join(names, "/"), nil
}

// PathEntries returns the id+name ancestor chain of a folder, root first
func (r *PostgresFolderRepository) PathEntries(ctx context.Context, folderID *string) ([]models.PathEntry, error) {
	if folderID == nil {
		return []models.PathEntry{}, nil
	}

	db := GetExecutor(ctx, r.pool)
	query := `SELECT name, parent_id FROM folders WHERE id = $1::uuid`

	entries := make([]models.PathEntry, 0, 8)
	next := folderID
	for depth := 0; next != nil; depth++ {
		if depth >= maxPathDepth {
			return nil, fmt.Errorf("folder %s: parent chain exceeds %d levels, tree is corrupted: %w", *folderID, maxPathDepth, domain.ErrDatabase)
		}

		var name string
		var parentID *string
		err := db.QueryRow(ctx, query, *next).Scan(&name, &parentID)
		if err != nil {
			if isPgNoRowsError(err) {
				if depth == 0 {
					return nil, fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
				}
				return nil, fmt.Errorf("folder %s: broken parent chain at %s: %w", *folderID, *next, domain.ErrDatabase)
			}
			return nil, fmt.Errorf("folder path: %w", domainDB(err))
		}

		entries = append(entries, models.PathEntry{ID: *next, Name: name})
		next = parentID
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}

func scanFolders(rows pgx.Rows) ([]models.Folder, error) {
	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.ParentID,
			&folder.OwnerID,
			&folder.Name,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", domainDB(err))
	}

	return folders, nil
}
