package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/services"
)

func newFileFixture() (*fakeFileRepo, *fakeFolderRepo, *fakePermRepo, *fakeTxManager, *fakeStore, services.FileService) {
	files := newFakeFileRepo()
	folders := newFakeFolderRepo()
	perms := newFakePermRepo()
	txm := &fakeTxManager{}
	store := newFakeStore()
	svc := NewFileService(files, folders, NewPermissionGate(perms), txm, store, slog.Default())
	return files, folders, perms, txm, store, svc
}

func uploadReq(folderID *string, filename string) *services.UploadRequest {
	return &services.UploadRequest{
		FolderID: folderID,
		Filename: filename,
		Content:  strings.NewReader("payload"),
	}
}

func TestUpload(t *testing.T) {
	files, folders, perms, _, store, svc := newFileFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, false, true)

	file, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(strPtr("folder-1"), "report.pdf"))
	if err != nil {
		t.Fatalf("Upload = %v", err)
	}

	if file.Name != "report.pdf" {
		t.Errorf("Name = %q, want %q", file.Name, "report.pdf")
	}
	if file.Size != 42 {
		t.Errorf("Size = %d, want the measured size 42", file.Size)
	}
	if !store.fileSet["docs/report.pdf"] {
		t.Error("content not written")
	}
	if _, ok := files.files[file.ID]; !ok {
		t.Error("file row not created")
	}
}

func TestUploadExplicitNameWins(t *testing.T) {
	_, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)

	req := uploadReq(nil, "upload.tmp")
	req.Name = strPtr("minutes.txt")

	file, err := svc.Upload(context.Background(), userPrincipal(), req)
	if err != nil {
		t.Fatalf("Upload = %v", err)
	}
	if file.Name != "minutes.txt" {
		t.Errorf("Name = %q, want the explicit name", file.Name)
	}
	if !store.fileSet["minutes.txt"] {
		t.Error("content not written under the explicit name")
	}
}

func TestUploadRequiresEdit(t *testing.T) {
	_, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, true, false) // no edit

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "report.pdf"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Upload = %v, want ErrForbidden", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("filesystem touched on forbidden upload: %v", store.ops)
	}
}

func TestUploadInvalidFilename(t *testing.T) {
	_, _, perms, _, _, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "bad|name"))
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("Upload = %v, want ErrInvalidName", err)
	}
}

func TestUploadConflictWithoutOverwrite(t *testing.T) {
	files, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)
	files.add("file-existing", &models.File{Name: "report.pdf", OwnerID: "user-2"})

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "report.pdf"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Upload = %v, want ErrConflict", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("filesystem touched on conflict: %v", store.ops)
	}
}

func TestUploadOverwriteReplacesRow(t *testing.T) {
	files, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)
	files.add("file-existing", &models.File{Name: "report.pdf", OwnerID: "user-2"})
	store.fileSet["report.pdf"] = true

	req := uploadReq(nil, "report.pdf")
	req.Overwrite = true

	file, err := svc.Upload(context.Background(), userPrincipal(), req)
	if err != nil {
		t.Fatalf("Upload = %v", err)
	}

	if _, ok := files.files["file-existing"]; ok {
		t.Error("old row not replaced")
	}
	if file.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want the uploader", file.OwnerID)
	}
	if !store.fileSet["report.pdf"] {
		t.Error("new content not written")
	}
}

func TestUploadCommitFailureRemovesFile(t *testing.T) {
	_, _, perms, txm, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)
	txm.commitErr = errors.New("connection lost")

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "report.pdf"))
	if err == nil {
		t.Fatal("Upload = nil, want commit error")
	}
	if store.fileSet["report.pdf"] {
		t.Error("written file not removed after commit failure")
	}
}

func TestUploadInsertFailureRemovesFile(t *testing.T) {
	files, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)
	// A concurrent upload can win the race between the existence check and
	// the insert; the loser's unique violation must not strand its bytes.
	files.createErr = &domain.ConflictError{Resource: "file", Name: "report.pdf"}

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "report.pdf"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Upload = %v, want ErrConflict", err)
	}
	if store.fileSet["report.pdf"] {
		t.Error("written file left on disk after insert failure")
	}
}

func TestUploadInsertAndCleanupFailure(t *testing.T) {
	files, _, perms, _, store, svc := newFileFixture()
	perms.allow("user-1", nil, true, false, true)
	files.createErr = errors.New("insert failed")
	store.removeErr = errors.New("device busy")

	_, err := svc.Upload(context.Background(), userPrincipal(), uploadReq(nil, "report.pdf"))
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("Upload = %v, want ErrPartialFailure", err)
	}

	var partial *domain.PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("error type = %T, want *PartialFailure", err)
	}
	if partial.OrphanedPath != "report.pdf" {
		t.Errorf("OrphanedPath = %q, want %q", partial.OrphanedPath, "report.pdf")
	}
	if partial.CleanupErr == nil {
		t.Error("CleanupErr not recorded")
	}
}

func TestRenameFile(t *testing.T) {
	files, folders, perms, _, store, svc := newFileFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	files.add("file-1", &models.File{FolderID: strPtr("folder-1"), Name: "old.txt", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, false, true)

	file, err := svc.Rename(context.Background(), userPrincipal(), "file-1", &services.RenameRequest{Name: "new.txt"})
	if err != nil {
		t.Fatalf("Rename = %v", err)
	}

	if file.Name != "new.txt" {
		t.Errorf("Name = %q, want %q", file.Name, "new.txt")
	}
	if len(store.ops) != 1 || store.ops[0] != "rename docs/old.txt docs/new.txt" {
		t.Errorf("store ops = %v", store.ops)
	}
}

func TestDeleteFile(t *testing.T) {
	files, folders, perms, _, store, svc := newFileFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	files.add("file-1", &models.File{FolderID: strPtr("folder-1"), Name: "report.pdf", OwnerID: "user-1"})
	store.fileSet["docs/report.pdf"] = true
	perms.allow("user-1", strPtr("folder-1"), true, false, true)

	if err := svc.Delete(context.Background(), userPrincipal(), "file-1"); err != nil {
		t.Fatalf("Delete = %v", err)
	}

	if _, ok := files.files["file-1"]; ok {
		t.Error("file row not deleted")
	}
	if store.fileSet["docs/report.pdf"] {
		t.Error("bytes not removed")
	}
}

func TestDeleteFileNotFound(t *testing.T) {
	_, _, _, _, store, svc := newFileFixture()

	err := svc.Delete(context.Background(), adminPrincipal(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
	if len(store.ops) != 0 {
		t.Error("filesystem touched for a missing file")
	}
}

func TestDeleteFileUnlinkFailureEscalates(t *testing.T) {
	files, folders, perms, _, store, svc := newFileFixture()
	folders.add("folder-1", "docs", &models.Folder{Name: "docs", OwnerID: "user-1"})
	files.add("file-1", &models.File{FolderID: strPtr("folder-1"), Name: "report.pdf", OwnerID: "user-1"})
	perms.allow("user-1", strPtr("folder-1"), true, false, true)
	store.removeErr = errors.New("device busy")

	err := svc.Delete(context.Background(), userPrincipal(), "file-1")
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("Delete = %v, want ErrPartialFailure", err)
	}

	var partial *domain.PartialFailure
	if !errors.As(err, &partial) {
		t.Fatalf("error type = %T, want *PartialFailure", err)
	}
	if partial.OrphanedPath != "docs/report.pdf" {
		t.Errorf("OrphanedPath = %q, want %q", partial.OrphanedPath, "docs/report.pdf")
	}
}
