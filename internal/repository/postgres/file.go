package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{pool: config.Pool}
}

// Create creates a new file row
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (folder_id, owner_id, name, size)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id, created_at, updated_at
	`

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		file.FolderID,
		file.OwnerID,
		file.Name,
		file.Size,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Resource: "file", Name: file.Name}
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", domainDB(err))
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, folder_id, owner_id, name, size, created_at, updated_at
		FROM files
		WHERE id = $1::uuid
	`

	var file models.File
	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FolderID,
		&file.OwnerID,
		&file.Name,
		&file.Size,
		&file.CreatedAt,
		&file.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", domainDB(err))
	}

	return &file, nil
}

// Rename updates a file's name
func (r *PostgresFileRepository) Rename(ctx context.Context, id, name string) error {
	query := `
		UPDATE files
		SET name = $1, updated_at = NOW()
		WHERE id = $2::uuid
	`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, name, id)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Resource: "file", Name: name}
		}
		return fmt.Errorf("rename file: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a file row by ID
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1::uuid`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByName deletes a file row by (folder, name)
func (r *PostgresFileRepository) DeleteByName(ctx context.Context, folderID *string, name string) error {
	query := `DELETE FROM files WHERE folder_id IS NOT DISTINCT FROM $1::uuid AND name = $2`

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, folderID, name)
	if err != nil {
		return fmt.Errorf("delete file by name: %w", domainDB(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
	}

	return nil
}

// Exists reports whether a file named name exists in the folder
func (r *PostgresFileRepository) Exists(ctx context.Context, folderID *string, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM files
			WHERE folder_id IS NOT DISTINCT FROM $1::uuid AND name = $2
		)
	`

	var exists bool
	db := GetExecutor(ctx, r.pool)
	if err := db.QueryRow(ctx, query, folderID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("file exists: %w", domainDB(err))
	}

	return exists, nil
}

// ListChildren lists files directly inside the folder without a permission filter
func (r *PostgresFileRepository) ListChildren(ctx context.Context, folderID *string, order models.ListOrder) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, owner_id, name, size, created_at, updated_at
		FROM files
		WHERE folder_id IS NOT DISTINCT FROM $1::uuid
		ORDER BY %s
	`, orderClause(order))

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListChildrenFor lists files inside the folder carrying a read grant for the user
func (r *PostgresFileRepository) ListChildrenFor(ctx context.Context, userID string, folderID *string, order models.ListOrder) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.folder_id, f.owner_id, f.name, f.size, f.created_at, f.updated_at
		FROM files f
		JOIN permissions p ON p.folder_id IS NOT DISTINCT FROM f.folder_id
		WHERE p.user_id = $1::uuid
		  AND p.read = TRUE
		  AND f.folder_id IS NOT DISTINCT FROM $2::uuid
		ORDER BY f.%s
	`, orderClause(order))

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListAll retrieves every file (flat list)
func (r *PostgresFileRepository) ListAll(ctx context.Context) ([]models.File, error) {
	query := `
		SELECT id, folder_id, owner_id, name, size, created_at, updated_at
		FROM files
		ORDER BY name ASC
	`

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all files: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListAllFor retrieves every file carrying a read grant for the user
func (r *PostgresFileRepository) ListAllFor(ctx context.Context, userID string) ([]models.File, error) {
	query := `
		SELECT f.id, f.folder_id, f.owner_id, f.name, f.size, f.created_at, f.updated_at
		FROM files f
		JOIN permissions p ON p.folder_id IS NOT DISTINCT FROM f.folder_id
		WHERE p.user_id = $1::uuid
		  AND p.read = TRUE
		ORDER BY f.name ASC
	`

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all files: %w", domainDB(err))
	}
	defer rows.Close()

	return scanFiles(rows)
}

func scanFiles(rows pgx.Rows) ([]models.File, error) {
	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.FolderID,
			&file.OwnerID,
			&file.Name,
			&file.Size,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", domainDB(err))
	}

	return files, nil
}
