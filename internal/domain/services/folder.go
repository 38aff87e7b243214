package services

import (
	"context"

	"lempek/internal/domain/models"
)

// FolderService handles folder business logic: the permission-gated tree
// mutations that keep the database and the on-disk directory tree in step.
type FolderService interface {
	// Create creates a folder row, a full-grant permission row for the
	// creator and the matching directory on disk
	Create(ctx context.Context, principal *models.Principal, req *CreateFolderRequest) (*models.Folder, error)

	// Rename renames a folder and moves its directory
	Rename(ctx context.Context, principal *models.Principal, id string, req *RenameRequest) (*models.Folder, error)

	// Delete removes a folder row (descendants cascade) and its directory subtree
	Delete(ctx context.Context, principal *models.Principal, id string) error

	// List returns the direct child folders the principal can read
	List(ctx context.Context, principal *models.Principal, parentID *string, order models.ListOrder) ([]models.Folder, error)

	// ListAll returns every folder the principal can read, flat
	ListAll(ctx context.Context, principal *models.Principal) ([]models.Folder, error)

	// Path returns the id+name ancestor chain of a folder, root first
	Path(ctx context.Context, principal *models.Principal, folderID *string) ([]models.PathEntry, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent,omitempty"` // null for root folders
}

// RenameRequest carries the new name for a folder or file rename
type RenameRequest struct {
	Name string `json:"name"`
}
