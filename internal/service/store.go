package service

import "io"

// Store is the filesystem collaborator of the folder and file services.
// Paths are slash-separated and relative to the content root.
// *storage.DirStore is the production implementation.
type Store interface {
	CreateDir(rel string) error
	CreateAll(rel string) error
	Rename(oldRel, newRel string) error
	RemoveAll(rel string) error
	RemoveFile(rel string) error
	Exists(rel string) bool
	WriteFile(rel string, content io.Reader) (int64, error)
}
