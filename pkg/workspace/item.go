// Package workspace models the document tree of a project: a root folder of
// the writer's own documents plus the fixed Research and Trash folders.
//
// Items are either *Document or *Folder. The Item interface is sealed, and
// every traversal in this package switches over both cases.
//
// Operations validate their arguments before changing anything, so a failed
// call leaves the tree as it was. The tree is not safe for concurrent use.
package workspace

import (
	"strings"

	"github.com/google/uuid"
)

// Suffix is the persisted name suffix of documents.
const Suffix = ".lango"

// Item is a node in the workspace tree.
type Item interface {
	ItemID() string
	ItemName() string
	// DisplayName is the name shown to the writer.
	DisplayName() string
	isItem()
}

func newID() string {
	return uuid.NewString()
}

// withSuffix appends the document suffix when name does not already carry it.
func withSuffix(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return name
	}
	return name + Suffix
}

// StripSuffix removes the document suffix for display.
func StripSuffix(name string) string {
	return strings.TrimSuffix(name, Suffix)
}

func kindOf(item Item) string {
	switch item.(type) {
	case *Document:
		return "document"
	case *Folder:
		return "folder"
	}
	return "item"
}
