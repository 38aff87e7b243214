package repositories

import (
	"context"

	"lempek/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// All methods run against the context executor, so calls made inside
// TransactionManager.ExecTx/ExecPaired observe uncommitted changes.
type FolderRepository interface {
	// Create creates a new folder and fills in its ID and timestamps
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// Rename updates a folder's name
	Rename(ctx context.Context, id, name string) error

	// Delete deletes a folder; descendants and permission rows cascade
	Delete(ctx context.Context, id string) error

	// ListChildren lists immediate child folders (nil parent = root level)
	ListChildren(ctx context.Context, parentID *string, order models.ListOrder) ([]models.Folder, error)

	// ListChildrenFor lists immediate child folders the user holds Read on
	ListChildrenFor(ctx context.Context, userID string, parentID *string, order models.ListOrder) ([]models.Folder, error)

	// ListAll retrieves every folder (flat list)
	ListAll(ctx context.Context) ([]models.Folder, error)

	// ListAllFor retrieves every folder the user holds Read on (flat list)
	ListAllFor(ctx context.Context, userID string) ([]models.Folder, error)

	// ResolvePath computes the slash-joined path of a folder by walking
	// parent links up to the root; nil resolves to the empty path
	ResolvePath(ctx context.Context, folderID *string) (string, error)

	// PathEntries returns the id+name ancestor chain of a folder, root first
	PathEntries(ctx context.Context, folderID *string) ([]models.PathEntry, error)
}
