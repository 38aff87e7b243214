// Package seed applies the bootstrap state on startup: the admin account
// and the configured top-level folders. Every step is idempotent, so
// restarting a seeded deployment changes nothing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lempek/internal/auth"
	"lempek/internal/config"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
	"lempek/internal/domain/services"
)

// Seeder applies a bootstrap definition
type Seeder struct {
	users   repositories.UserRepository
	perms   repositories.PermissionRepository
	txm     repositories.TransactionManager
	folders services.FolderService
	logger  *slog.Logger
}

// New creates a seeder
func New(
	users repositories.UserRepository,
	perms repositories.PermissionRepository,
	txm repositories.TransactionManager,
	folders services.FolderService,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{users: users, perms: perms, txm: txm, folders: folders, logger: logger}
}

// Apply ensures the admin account exists and creates any missing top-level
// folders as that admin.
func (s *Seeder) Apply(ctx context.Context, bootstrap *config.Bootstrap) error {
	admin, err := s.ensureAdmin(ctx, bootstrap)
	if err != nil {
		return err
	}

	principal := &models.Principal{
		UserID:   admin.ID,
		Login:    admin.Login,
		Username: admin.Username,
		Admin:    true,
	}

	for _, name := range bootstrap.Folders {
		_, err := s.folders.Create(ctx, principal, &services.CreateFolderRequest{Name: name})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return fmt.Errorf("seed folder %q: %w", name, err)
		}
		s.logger.Info("seeded folder", "name", name)
	}

	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, bootstrap *config.Bootstrap) (*models.User, error) {
	existing, err := s.users.GetByLogin(ctx, bootstrap.Admin.Login)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(bootstrap.Admin.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:    bootstrap.Admin.Login,
		Username: bootstrap.Admin.Username,
		Password: hash,
		Admin:    true,
	}

	err = s.txm.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		grant := &models.Permission{
			UserID:   user.ID,
			FolderID: nil,
			Read:     true,
			Modify:   true,
			Edit:     true,
		}
		return s.perms.Grant(txCtx, grant)
	})
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	s.logger.Info("seeded admin account", "login", user.Login)
	return user, nil
}
