package service

import (
	"context"
	"fmt"
	"io"

	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
)

// Test fixtures shared by the service tests. The fakes embed the repository
// interfaces so only the methods a test exercises need implementations;
// calling anything else panics and fails the test loudly.

func adminPrincipal() *models.Principal {
	return &models.Principal{UserID: "user-admin", Login: "admin", Admin: true}
}

func userPrincipal() *models.Principal {
	return &models.Principal{UserID: "user-1", Login: "alice"}
}

func strPtr(s string) *string { return &s }

type fakeFolderRepo struct {
	repositories.FolderRepository
	folders   map[string]*models.Folder
	paths     map[string]string
	createErr error
	renameErr error
	deleteErr error
	nextID    int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders: make(map[string]*models.Folder),
		paths:   make(map[string]string),
	}
}

// add seeds a folder and its resolved path directly
func (f *fakeFolderRepo) add(id, path string, folder *models.Folder) {
	folder.ID = id
	f.folders[id] = folder
	f.paths[id] = path
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	folder.ID = fmt.Sprintf("folder-%d", f.nextID)
	prefix := ""
	if folder.ParentID != nil {
		prefix = f.paths[*folder.ParentID] + "/"
	}
	f.folders[folder.ID] = folder
	f.paths[folder.ID] = prefix + folder.Name
	return nil
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return folder, nil
}

func (f *fakeFolderRepo) Rename(ctx context.Context, id, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	folder, ok := f.folders[id]
	if !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	folder.Name = name
	return nil
}

func (f *fakeFolderRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeFolderRepo) ResolvePath(ctx context.Context, folderID *string) (string, error) {
	if folderID == nil {
		return "", nil
	}
	path, ok := f.paths[*folderID]
	if !ok {
		return "", fmt.Errorf("folder %s: %w", *folderID, domain.ErrNotFound)
	}
	return path, nil
}

type fakeFileRepo struct {
	repositories.FileRepository
	files     map[string]*models.File
	createErr error
	nextID    int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.File)}
}

func (f *fakeFileRepo) add(id string, file *models.File) {
	file.ID = id
	f.files[id] = file
}

func (f *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	file.ID = fmt.Sprintf("file-%d", f.nextID)
	f.files[file.ID] = file
	return nil
}

func (f *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	return file, nil
}

func (f *fakeFileRepo) Rename(ctx context.Context, id, name string) error {
	file, ok := f.files[id]
	if !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	file.Name = name
	return nil
}

func (f *fakeFileRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.files[id]; !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(f.files, id)
	return nil
}

func (f *fakeFileRepo) DeleteByName(ctx context.Context, folderID *string, name string) error {
	for id, file := range f.files {
		if file.Name == name && samePtr(file.FolderID, folderID) {
			delete(f.files, id)
			return nil
		}
	}
	return nil
}

func (f *fakeFileRepo) Exists(ctx context.Context, folderID *string, name string) (bool, error) {
	for _, file := range f.files {
		if file.Name == name && samePtr(file.FolderID, folderID) {
			return true, nil
		}
	}
	return false, nil
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakePermRepo struct {
	repositories.PermissionRepository
	rows    map[string]*models.Permission
	granted []*models.Permission
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{rows: make(map[string]*models.Permission)}
}

func permKey(userID string, folderID *string) string {
	if folderID == nil {
		return userID + "/"
	}
	return userID + "/" + *folderID
}

// allow seeds a permission row
func (f *fakePermRepo) allow(userID string, folderID *string, read, modify, edit bool) {
	f.rows[permKey(userID, folderID)] = &models.Permission{
		UserID:   userID,
		FolderID: folderID,
		Read:     read,
		Modify:   modify,
		Edit:     edit,
	}
}

func (f *fakePermRepo) Grant(ctx context.Context, perm *models.Permission) error {
	perm.ID = fmt.Sprintf("perm-%d", len(f.granted)+1)
	f.rows[permKey(perm.UserID, perm.FolderID)] = perm
	f.granted = append(f.granted, perm)
	return nil
}

func (f *fakePermRepo) Get(ctx context.Context, userID string, folderID *string) (*models.Permission, error) {
	return f.rows[permKey(userID, folderID)], nil
}

// fakeTxManager runs fn inline. A non-nil commitErr simulates a commit that
// fails after fn succeeded, which triggers the undo path of ExecPaired.
type fakeTxManager struct {
	commitErr error
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

func (m *fakeTxManager) ExecPaired(ctx context.Context, fn repositories.TxFn, undo repositories.UndoFn) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if m.commitErr != nil {
		if undo != nil {
			if uerr := undo(m.commitErr); uerr != nil {
				return uerr
			}
		}
		return m.commitErr
	}
	return nil
}

// fakeStore records filesystem operations in order
type fakeStore struct {
	ops       []string
	dirs      map[string]bool
	fileSet   map[string]bool
	createErr error
	writeErr  error
	renameErr error
	removeErr error
	size      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{dirs: make(map[string]bool), fileSet: make(map[string]bool), size: 42}
}

func (s *fakeStore) CreateDir(rel string) error {
	s.ops = append(s.ops, "mkdir "+rel)
	if s.createErr != nil {
		return s.createErr
	}
	s.dirs[rel] = true
	return nil
}

func (s *fakeStore) CreateAll(rel string) error {
	s.ops = append(s.ops, "mkdirall "+rel)
	if s.createErr != nil {
		return s.createErr
	}
	s.dirs[rel] = true
	return nil
}

func (s *fakeStore) Rename(oldRel, newRel string) error {
	s.ops = append(s.ops, "rename "+oldRel+" "+newRel)
	return s.renameErr
}

func (s *fakeStore) RemoveAll(rel string) error {
	s.ops = append(s.ops, "rmall "+rel)
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.dirs, rel)
	return nil
}

func (s *fakeStore) RemoveFile(rel string) error {
	s.ops = append(s.ops, "rm "+rel)
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.fileSet, rel)
	return nil
}

func (s *fakeStore) Exists(rel string) bool {
	return s.dirs[rel] || s.fileSet[rel]
}

func (s *fakeStore) WriteFile(rel string, content io.Reader) (int64, error) {
	s.ops = append(s.ops, "write "+rel)
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.fileSet[rel] = true
	return s.size, nil
}
