package repositories

import (
	"context"

	"lempek/internal/domain/models"
)

// FileRepository defines data access operations for file metadata rows.
// Content bytes live on disk; rows and disk entries move in lock-step
// through the services, never independently.
type FileRepository interface {
	// Create creates a new file row and fills in its ID and timestamps
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*models.File, error)

	// Rename updates a file's name
	Rename(ctx context.Context, id, name string) error

	// Delete deletes a file row by ID
	Delete(ctx context.Context, id string) error

	// DeleteByName deletes a file row by (folder, name); used by overwriting uploads
	DeleteByName(ctx context.Context, folderID *string, name string) error

	// Exists reports whether a file named name exists in the folder
	Exists(ctx context.Context, folderID *string, name string) (bool, error)

	// ListChildren lists files directly inside the folder (nil = root level)
	ListChildren(ctx context.Context, folderID *string, order models.ListOrder) ([]models.File, error)

	// ListChildrenFor lists files inside the folder the user holds Read on
	ListChildrenFor(ctx context.Context, userID string, folderID *string, order models.ListOrder) ([]models.File, error)

	// ListAll retrieves every file (flat list)
	ListAll(ctx context.Context) ([]models.File, error)

	// ListAllFor retrieves every file the user holds Read on (flat list)
	ListAllFor(ctx context.Context, userID string) ([]models.File, error)
}
