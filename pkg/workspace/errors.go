package workspace

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by workspace operations. The typed errors below
// match them with errors.Is.
var (
	// ErrFormat is returned when persisted data is missing a discriminator
	// or a required field.
	ErrFormat = errors.New("invalid workspace format")

	// ErrCycle is returned when a move would make a folder its own descendant.
	ErrCycle = errors.New("folder cannot be moved into itself")

	// ErrNotFound is returned when an item is not where the caller claims.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidName is returned for empty item names.
	ErrInvalidName = errors.New("name cannot be empty")

	// ErrSpecialFolder is returned when an operation would rename or move
	// the root, Research or Trash folder.
	ErrSpecialFolder = errors.New("operation not allowed on workspace folders")
)

// FormatError reports the JSON path of malformed persisted data.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid workspace format at %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// CycleError names the folder that could not be moved and its destination.
type CycleError struct {
	Folder      string
	Destination string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cannot move folder %q into %q: destination is the folder or one of its descendants", e.Folder, e.Destination)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// NotFoundError names an item missing from the folder it was claimed to be in.
type NotFoundError struct {
	Item   string
	Folder string
}

func (e *NotFoundError) Error() string {
	if e.Folder == "" {
		return fmt.Sprintf("item %q not found in workspace", e.Item)
	}
	return fmt.Sprintf("item %q not found in folder %q", e.Item, e.Folder)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
