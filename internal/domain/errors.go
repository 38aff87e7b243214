package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrInvalidName    = errors.New("invalid name")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrStorage        = errors.New("storage operation failed")
	ErrPartialFailure = errors.New("partial failure")
	ErrDatabase       = errors.New("database error")
)

// InvalidNameError reports a rejected folder or file name. It carries the
// complete forbidden-character and reserved-name sets so the client receives
// one actionable message instead of discovering the rules one at a time.
type InvalidNameError struct {
	Name          string
	Reason        string
	ForbiddenRune rune     // the character that triggered the rejection, if any
	Forbidden     []rune   // full forbidden-character set
	Reserved      []string // full reserved-name list, set on a reserved-name match
}

func (e *InvalidNameError) Error() string {
	if len(e.Reserved) > 0 {
		return fmt.Sprintf("name %q is reserved; reserved names: %s", e.Name, strings.Join(e.Reserved, ", "))
	}
	if len(e.Forbidden) > 0 {
		quoted := make([]string, len(e.Forbidden))
		for i, r := range e.Forbidden {
			quoted[i] = fmt.Sprintf("'%c'", r)
		}
		return fmt.Sprintf("name contains forbidden character '%c'; forbidden characters: %s", e.ForbiddenRune, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

// Is allows errors.Is() to match against ErrInvalidName
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// ConflictError represents a sibling-name collision on create or rename
type ConflictError struct {
	Resource string // "folder" or "file"
	Name     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s named %q already exists in this location", e.Resource, e.Name)
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ForbiddenError names the capability the principal is missing
type ForbiddenError struct {
	Capability string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("no permission to %s", e.Capability)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// PartialFailure records a database/filesystem divergence that survived the
// best-effort compensation: the transaction outcome and the on-disk state no
// longer agree. OrphanedPath names the entry an operator has to reconcile by
// hand; it is logged, never sent to clients.
type PartialFailure struct {
	Op           string // operation that diverged, e.g. "folder.delete"
	OrphanedPath string
	Cause        error // the error that broke the primary step
	CleanupErr   error // the error that broke the compensation, if any
}

func (e *PartialFailure) Error() string {
	if e.CleanupErr != nil {
		return fmt.Sprintf("%s: state diverged, orphaned %q: %v (cleanup failed: %v)", e.Op, e.OrphanedPath, e.Cause, e.CleanupErr)
	}
	return fmt.Sprintf("%s: state diverged, orphaned %q: %v", e.Op, e.OrphanedPath, e.Cause)
}

func (e *PartialFailure) Is(target error) bool {
	return target == ErrPartialFailure
}

func (e *PartialFailure) Unwrap() error { return e.Cause }
