package models

import (
	"time"
)

type File struct {
	ID        string    `json:"id"`
	FolderID  *string   `json:"folder_id"` // NULL = root level
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
