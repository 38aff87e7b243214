package models

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parent_id"` // NULL = root level
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"` // Computed display path, not stored in DB
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PathEntry is one step of a folder's ancestor chain, root first.
type PathEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
