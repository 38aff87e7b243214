package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/services"
)

func newFolderFixture() (*fakeFolderRepo, *fakePermRepo, *fakeTxManager, *fakeStore, services.FolderService) {
	folders := newFakeFolderRepo()
	perms := newFakePermRepo()
	txm := &fakeTxManager{}
	store := newFakeStore()
	svc := NewFolderService(folders, perms, NewPermissionGate(perms), txm, store, slog.Default())
	return folders, perms, txm, store, svc
}

func TestCreateFolder(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, true)

	folder, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "projects"})
	if err != nil {
		t.Fatalf("Create = %v", err)
	}

	if folder.ID == "" {
		t.Error("folder ID not assigned")
	}
	if folder.Path != "projects" {
		t.Errorf("Path = %q, want %q", folder.Path, "projects")
	}
	if !store.dirs["projects"] {
		t.Error("directory was not created")
	}
	if _, ok := folders.folders[folder.ID]; !ok {
		t.Error("folder row was not created")
	}

	// The creator receives a full grant on the new folder
	grant, _ := perms.Get(context.Background(), "user-1", &folder.ID)
	if grant == nil || !grant.Read || !grant.Modify || !grant.Edit {
		t.Errorf("creator grant = %+v, want full grant", grant)
	}
}

func TestCreateFolderNested(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	parent := &models.Folder{Name: "docs", OwnerID: "user-1"}
	folders.add("folder-parent", "docs", parent)
	perms.allow("user-1", strPtr("folder-parent"), true, true, true)

	folder, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{
		Name:     "reports",
		ParentID: strPtr("folder-parent"),
	})
	if err != nil {
		t.Fatalf("Create = %v", err)
	}

	if folder.Path != "docs/reports" {
		t.Errorf("Path = %q, want %q", folder.Path, "docs/reports")
	}
	if !store.dirs["docs/reports"] {
		t.Error("nested directory was not created")
	}
}

func TestCreateFolderRequiresEdit(t *testing.T) {
	_, perms, _, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, false) // no edit

	_, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "projects"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Create = %v, want ErrForbidden", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("filesystem touched on forbidden create: %v", store.ops)
	}
}

func TestCreateFolderInvalidName(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, true)

	_, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "a/b"})
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("Create = %v, want ErrInvalidName", err)
	}
	if len(folders.folders) != 0 || len(store.ops) != 0 {
		t.Error("invalid name must be rejected before any write")
	}
}

func TestCreateFolderConflictLeavesDiskAlone(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, true)
	folders.createErr = &domain.ConflictError{Resource: "folder", Name: "projects"}

	_, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "projects"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Create = %v, want ErrConflict", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("filesystem touched on conflict: %v", store.ops)
	}
}

func TestCreateFolderCommitFailureRemovesDirectory(t *testing.T) {
	_, perms, txm, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, true)
	txm.commitErr = errors.New("connection lost")

	_, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "projects"})
	if err == nil {
		t.Fatal("Create = nil, want commit error")
	}
	if errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("clean compensation must not report partial failure, got %v", err)
	}
	if store.dirs["projects"] {
		t.Error("directory not removed after commit failure")
	}
}

func TestCreateFolderCommitAndCleanupFailure(t *testing.T) {
	_, perms, txm, store, svc := newFolderFixture()
	perms.allow("user-1", nil, true, true, true)
	txm.commitErr = errors.New("connection lost")
	store.removeErr = errors.New("device busy")

	_, err := svc.Create(context.Background(), userPrincipal(), &services.CreateFolderRequest{Name: "projects"})
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("Create = %v, want ErrPartialFailure", err)
	}

	var partial *domain.PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("error type = %T, want *PartialFailure", err)
	}
	if partial.OrphanedPath != "projects" {
		t.Errorf("OrphanedPath = %q, want %q", partial.OrphanedPath, "projects")
	}
	if partial.CleanupErr == nil {
		t.Error("CleanupErr not recorded")
	}
}

func TestRenameFolder(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	folders.add("folder-1", "docs/old", &models.Folder{ParentID: strPtr("folder-p"), Name: "old", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, true, false)

	folder, err := svc.Rename(context.Background(), userPrincipal(), "folder-1", &services.RenameRequest{Name: "new"})
	if err != nil {
		t.Fatalf("Rename = %v", err)
	}

	if folder.Name != "new" {
		t.Errorf("Name = %q, want %q", folder.Name, "new")
	}
	if len(store.ops) != 1 || store.ops[0] != "rename docs/old docs/new" {
		t.Errorf("store ops = %v, want one rename docs/old -> docs/new", store.ops)
	}
}

func TestRenameFolderRequiresModify(t *testing.T) {
	folders, perms, _, _, svc := newFolderFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, false, true) // no modify

	_, err := svc.Rename(context.Background(), userPrincipal(), "folder-1", &services.RenameRequest{Name: "new"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Rename = %v, want ErrForbidden", err)
	}
}

func TestRenameFolderNotFound(t *testing.T) {
	_, _, _, store, svc := newFolderFixture()

	_, err := svc.Rename(context.Background(), adminPrincipal(), "missing", &services.RenameRequest{Name: "new"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Rename = %v, want ErrNotFound", err)
	}
	if len(store.ops) != 0 {
		t.Error("filesystem touched for a missing folder")
	}
}

func TestRenameFolderCommitFailureRenamesBack(t *testing.T) {
	folders, perms, txm, store, svc := newFolderFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, true, false)
	txm.commitErr = errors.New("connection lost")

	_, err := svc.Rename(context.Background(), userPrincipal(), "folder-1", &services.RenameRequest{Name: "new"})
	if err == nil {
		t.Fatal("Rename = nil, want commit error")
	}

	want := []string{"rename docs new", "rename new docs"}
	if len(store.ops) != 2 || store.ops[0] != want[0] || store.ops[1] != want[1] {
		t.Errorf("store ops = %v, want %v", store.ops, want)
	}
}

func TestDeleteFolder(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	store.dirs["docs"] = true
	perms.allow("user-1", strPtr("folder-1"), true, true, false)

	if err := svc.Delete(context.Background(), userPrincipal(), "folder-1"); err != nil {
		t.Fatalf("Delete = %v", err)
	}

	if _, ok := folders.folders["folder-1"]; ok {
		t.Error("folder row not deleted")
	}
	if store.dirs["docs"] {
		t.Error("directory not removed")
	}
}

func TestDeleteFolderUnlinkFailureEscalates(t *testing.T) {
	folders, perms, _, store, svc := newFolderFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, true, false)
	store.removeErr = errors.New("device busy")

	err := svc.Delete(context.Background(), userPrincipal(), "folder-1")
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("Delete = %v, want ErrPartialFailure", err)
	}

	var partial *domain.PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("error type = %T, want *PartialFailure", err)
	}
	if partial.OrphanedPath != "docs" {
		t.Errorf("OrphanedPath = %q, want %q", partial.OrphanedPath, "docs")
	}
	// The row is already gone; only the bytes linger
	if _, ok := folders.folders["folder-1"]; ok {
		t.Error("folder row should be deleted even when unlink fails")
	}
}
