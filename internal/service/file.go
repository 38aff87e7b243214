package service

import (
	"context"
	"log/slog"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
	"lempek/internal/domain/services"
)

// fileService implements the FileService interface
type fileService struct {
	files   repositories.FileRepository
	folders repositories.FolderRepository
	gate    services.PermissionGate
	txm     repositories.TransactionManager
	store   Store
	logger  *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	files repositories.FileRepository,
	folders repositories.FolderRepository,
	gate services.PermissionGate,
	txm repositories.TransactionManager,
	store Store,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		files:   files,
		folders: folders,
		gate:    gate,
		txm:     txm,
		store:   store,
		logger:  logger,
	}
}

// Upload streams content into the destination folder and records the row
// with the measured size. The row is committed only after the bytes are
// durably on disk.
func (s *fileService) Upload(ctx context.Context, principal *models.Principal, req *services.UploadRequest) (*models.File, error) {
	if err := s.gate.Require(ctx, principal, req.FolderID, models.CapabilityEdit); err != nil {
		return nil, err
	}

	// An explicit name parameter wins over the name the upload carried
	name := req.Filename
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}
	if err := CheckName(name); err != nil {
		return nil, err
	}

	file := &models.File{
		FolderID: req.FolderID,
		OwnerID:  principal.UserID,
		Name:     name,
	}

	var filePath string
	err := s.txm.ExecPaired(ctx, func(txCtx context.Context) error {
		exists, err := s.files.Exists(txCtx, req.FolderID, name)
		if err != nil {
			return err
		}
		if exists {
			if !req.Overwrite {
				return &domain.ConflictError{Resource: "file", Name: name}
			}
			if err := s.files.DeleteByName(txCtx, req.FolderID, name); err != nil {
				return err
			}
		}

		dirPath, err := s.folders.ResolvePath(txCtx, req.FolderID)
		if err != nil {
			return err
		}
		filePath = path.Join(dirPath, name)

		// The directory row may exist without its directory (recovered
		// backups); materialize the chain before writing.
		if err := s.store.CreateAll(dirPath); err != nil {
			return err
		}

		if exists {
			if err := s.store.RemoveFile(filePath); err != nil {
				return err
			}
		}

		size, err := s.store.WriteFile(filePath, req.Content)
		if err != nil {
			return err
		}
		file.Size = size

		// The bytes are on disk; from here every failure reverts them
		// before returning so the rollback leaves both resources clean.
		if err := s.files.Create(txCtx, file); err != nil {
			if rmErr := s.store.RemoveFile(filePath); rmErr != nil {
				return &domain.PartialFailure{
					Op:           "file.upload",
					OrphanedPath: filePath,
					Cause:        err,
					CleanupErr:   rmErr,
				}
			}
			return err
		}

		return nil
	}, func(cause error) error {
		if err := s.store.RemoveFile(filePath); err != nil {
			return &domain.PartialFailure{
				Op:           "file.upload",
				OrphanedPath: filePath,
				Cause:        cause,
				CleanupErr:   err,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Rename updates the row and moves the on-disk entry within its folder
func (s *fileService) Rename(ctx context.Context, principal *models.Principal, id string, req *services.RenameRequest) (*models.File, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Require(ctx, principal, file.FolderID, models.CapabilityEdit); err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, NameRule),
	); err != nil {
		return nil, asInvalidName(err, req.Name)
	}

	var oldPath, newPath string
	err = s.txm.ExecPaired(ctx, func(txCtx context.Context) error {
		dirPath, err := s.folders.ResolvePath(txCtx, file.FolderID)
		if err != nil {
			return err
		}
		oldPath = path.Join(dirPath, file.Name)
		newPath = path.Join(dirPath, req.Name)

		if err := s.files.Rename(txCtx, id, req.Name); err != nil {
			return err
		}

		return s.store.Rename(oldPath, newPath)
	}, func(cause error) error {
		if err := s.store.Rename(newPath, oldPath); err != nil {
			return &domain.PartialFailure{
				Op:           "file.rename",
				OrphanedPath: newPath,
				Cause:        cause,
				CleanupErr:   err,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	file.Name = req.Name
	return file, nil
}

// Delete removes the row first, then the bytes once the delete is durable.
// A failed unlink leaves orphaned bytes and is escalated, never hidden.
func (s *fileService) Delete(ctx context.Context, principal *models.Principal, id string) error {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.gate.Require(ctx, principal, file.FolderID, models.CapabilityEdit); err != nil {
		return err
	}

	var filePath string
	err = s.txm.ExecTx(ctx, func(txCtx context.Context) error {
		dirPath, err := s.folders.ResolvePath(txCtx, file.FolderID)
		if err != nil {
			return err
		}
		filePath = path.Join(dirPath, file.Name)

		return s.files.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := s.store.RemoveFile(filePath); err != nil {
		return &domain.PartialFailure{
			Op:           "file.delete",
			OrphanedPath: filePath,
			Cause:        err,
		}
	}

	return nil
}

// List returns the files directly inside a folder the principal can read
func (s *fileService) List(ctx context.Context, principal *models.Principal, folderID *string, order models.ListOrder) ([]models.File, error) {
	if err := s.gate.Require(ctx, principal, folderID, models.CapabilityRead); err != nil {
		return nil, err
	}

	if principal.Admin {
		return s.files.ListChildren(ctx, folderID, order)
	}
	return s.files.ListChildrenFor(ctx, principal.UserID, folderID, order)
}

// ListAll returns every file the principal can read, flat
func (s *fileService) ListAll(ctx context.Context, principal *models.Principal) ([]models.File, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	if principal.Admin {
		return s.files.ListAll(ctx)
	}
	return s.files.ListAllFor(ctx, principal.UserID)
}
