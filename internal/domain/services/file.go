package services

import (
	"context"
	"io"

	"lempek/internal/domain/models"
)

// FileService handles file business logic, including uploads that persist
// content to disk and metadata to the database in one paired mutation.
type FileService interface {
	// Upload streams content to the destination folder and records the file
	// row with the measured size. Overwrite controls what happens when a
	// same-named file already exists there.
	Upload(ctx context.Context, principal *models.Principal, req *UploadRequest) (*models.File, error)

	// Rename renames a file and moves the on-disk entry
	Rename(ctx context.Context, principal *models.Principal, id string, req *RenameRequest) (*models.File, error)

	// Delete removes a file row and its bytes
	Delete(ctx context.Context, principal *models.Principal, id string) error

	// List returns the files directly inside a folder the principal can read
	List(ctx context.Context, principal *models.Principal, folderID *string, order models.ListOrder) ([]models.File, error)

	// ListAll returns every file the principal can read, flat
	ListAll(ctx context.Context, principal *models.Principal) ([]models.File, error)
}

// UploadRequest represents a file upload. Name takes priority over the
// inbound content's own filename when both are present.
type UploadRequest struct {
	FolderID  *string // destination folder, nil = root
	Name      *string // explicit name, overrides Filename
	Filename  string  // name carried by the uploaded content
	Overwrite bool
	Content   io.Reader
}
