// Package service implements the business logic layer: permission-gated
// tree mutations that keep the database rows and the on-disk directory
// tree moving in lock-step.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
	"lempek/internal/domain/services"
)

// folderService implements the FolderService interface
type folderService struct {
	folders repositories.FolderRepository
	perms   repositories.PermissionRepository
	gate    services.PermissionGate
	txm     repositories.TransactionManager
	store   Store
	logger  *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folders repositories.FolderRepository,
	perms repositories.PermissionRepository,
	gate services.PermissionGate,
	txm repositories.TransactionManager,
	store Store,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folders: folders,
		perms:   perms,
		gate:    gate,
		txm:     txm,
		store:   store,
		logger:  logger,
	}
}

// Create inserts the folder row, grants the creator every capability on it
// and creates the matching directory, all under one paired mutation.
func (s *folderService) Create(ctx context.Context, principal *models.Principal, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.gate.Require(ctx, principal, req.ParentID, models.CapabilityEdit); err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, NameRule),
	); err != nil {
		return nil, asInvalidName(err, req.Name)
	}

	folder := &models.Folder{
		ParentID: req.ParentID,
		OwnerID:  principal.UserID,
		Name:     req.Name,
	}

	var dirPath string
	err := s.txm.ExecPaired(ctx, func(txCtx context.Context) error {
		if err := s.folders.Create(txCtx, folder); err != nil {
			return err
		}

		grant := &models.Permission{
			UserID:   principal.UserID,
			FolderID: &folder.ID,
			Read:     true,
			Modify:   true,
			Edit:     true,
		}
		if err := s.perms.Grant(txCtx, grant); err != nil {
			return err
		}

		// The insert is visible inside the transaction, so the resolved
		// path already includes the new folder.
		p, err := s.folders.ResolvePath(txCtx, &folder.ID)
		if err != nil {
			return err
		}
		dirPath = p

		return s.store.CreateDir(dirPath)
	}, func(cause error) error {
		if err := s.store.RemoveAll(dirPath); err != nil {
			return &domain.PartialFailure{
				Op:           "folder.create",
				OrphanedPath: dirPath,
				Cause:        cause,
				CleanupErr:   err,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	folder.Path = dirPath
	return folder, nil
}

// Rename updates the row and moves the directory within the same parent
func (s *folderService) Rename(ctx context.Context, principal *models.Principal, id string, req *services.RenameRequest) (*models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Require(ctx, principal, &folder.ID, models.CapabilityModify); err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, NameRule),
	); err != nil {
		return nil, asInvalidName(err, req.Name)
	}

	var oldPath, newPath string
	err = s.txm.ExecPaired(ctx, func(txCtx context.Context) error {
		p, err := s.folders.ResolvePath(txCtx, &folder.ID)
		if err != nil {
			return err
		}
		oldPath = p
		newPath = path.Join(path.Dir(oldPath), req.Name)

		if err := s.folders.Rename(txCtx, id, req.Name); err != nil {
			return err
		}

		return s.store.Rename(oldPath, newPath)
	}, func(cause error) error {
		if err := s.store.Rename(newPath, oldPath); err != nil {
			return &domain.PartialFailure{
				Op:           "folder.rename",
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

	folder.Name = req.Name
	folder.Path = newPath
	return folder, nil
}

// Delete removes the row first so concurrent requests stop seeing the
// folder, then clears the directory once the delete is durable. A failed
// directory removal leaves orphaned bytes and is escalated, never hidden.
func (s *folderService) Delete(ctx context.Context, principal *models.Principal, id string) error {
	if err := s.gate.Require(ctx, principal, &id, models.CapabilityModify); err != nil {
		return err
	}

	var dirPath string
	err := s.txm.ExecTx(ctx, func(txCtx context.Context) error {
		p, err := s.folders.ResolvePath(txCtx, &id)
		if err != nil {
			return err
		}
		dirPath = p

		return s.folders.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := s.store.RemoveAll(dirPath); err != nil {
		return &domain.PartialFailure{
			Op:           "folder.delete",
			OrphanedPath: dirPath,
			Cause:        err,
		}
	}

	return nil
}

// List returns the direct children of a parent the principal can read
func (s *folderService) List(ctx context.Context, principal *models.Principal, parentID *string, order models.ListOrder) ([]models.Folder, error) {
	if err := s.gate.Require(ctx, principal, parentID, models.CapabilityRead); err != nil {
		return nil, err
	}

	if principal.Admin {
		return s.folders.ListChildren(ctx, parentID, order)
	}
	return s.folders.ListChildrenFor(ctx, principal.UserID, parentID, order)
}

// ListAll returns every folder the principal can read, flat
func (s *folderService) ListAll(ctx context.Context, principal *models.Principal) ([]models.Folder, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	if principal.Admin {
		return s.folders.ListAll(ctx)
	}
	return s.folders.ListAllFor(ctx, principal.UserID)
}

// Path returns the ancestor chain of a folder, root first
func (s *folderService) Path(ctx context.Context, principal *models.Principal, folderID *string) ([]models.PathEntry, error) {
	if err := s.gate.Require(ctx, principal, folderID, models.CapabilityRead); err != nil {
		return nil, err
	}

	return s.folders.PathEntries(ctx, folderID)
}

// asInvalidName normalizes ozzo's field-keyed errors so handlers see the
// domain taxonomy regardless of which rule fired.
func asInvalidName(err error, name string) error {
	if errs, ok := err.(validation.Errors); ok {
		for _, fieldErr := range errs {
			if inv, ok := fieldErr.(*domain.InvalidNameError); ok {
				return inv
			}
		}
	}
	return &domain.InvalidNameError{Name: name, Reason: fmt.Sprintf("%v", err)}
}
