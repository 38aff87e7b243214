package models

// Capability is one of the three independent grants a permission row carries.
// The set is closed: capability names never reach query text.
type Capability int

const (
	CapabilityRead Capability = iota
	CapabilityModify
	CapabilityEdit
)

func (c Capability) String() string {
	switch c {
	case CapabilityRead:
		return "read"
	case CapabilityModify:
		return "modify"
	case CapabilityEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Permission grants capabilities on one folder (or the root namespace when
// FolderID is nil) to one user. Grants are never inherited from ancestors:
// every accessible folder carries its own row.
type Permission struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	FolderID *string `json:"folder_id"` // NULL addresses the root namespace
	Read     bool    `json:"read"`
	Modify   bool    `json:"modify"`
	Edit     bool    `json:"edit"`
}

// Allows reports whether this permission row grants the capability.
func (p *Permission) Allows(c Capability) bool {
	if p == nil {
		return false
	}
	switch c {
	case CapabilityRead:
		return p.Read
	case CapabilityModify:
		return p.Modify
	case CapabilityEdit:
		return p.Edit
	default:
		return false
	}
}
