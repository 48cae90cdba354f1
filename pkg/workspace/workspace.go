package workspace

import (
	"strings"
)

const (
	// DefaultRootName names the root folder of a new project.
	DefaultRootName = "My Documents"
	ResearchName    = "Research"
	TrashName       = "Trash"
)

// AtEnd appends a moved item after the destination's last item.
const AtEnd = -1

// Workspace is the root folder plus the Research and Trash folders. The
// three are told apart by reference, never by name. Current, when set,
// always points at a document inside one of them.
type Workspace struct {
	Root     *Folder
	Research *Folder
	Trash    *Folder
	Current  *Document
}

// New returns an empty workspace whose root folder is named rootName.
func New(rootName string) *Workspace {
	if rootName == "" {
		rootName = DefaultRootName
	}
	return &Workspace{
		Root:     NewFolder(rootName),
		Research: NewFolder(ResearchName),
		Trash:    NewFolder(TrashName),
	}
}

// Folders returns the three top-level folders in display order.
func (w *Workspace) Folders() []*Folder {
	return []*Folder{w.Root, w.Research, w.Trash}
}

// IsRoot reports whether item is the workspace root. Renaming the root
// should be followed by a save of the whole workspace.
func (w *Workspace) IsRoot(item Item) bool {
	f, ok := item.(*Folder)
	return ok && f == w.Root
}

// IsSpecial reports whether f is the Research or Trash folder.
func (w *Workspace) IsSpecial(f *Folder) bool {
	return f == w.Research || f == w.Trash
}

func (w *Workspace) isTopLevel(f *Folder) bool {
	return f == w.Root || w.IsSpecial(f)
}

// owns reports whether f is a top-level folder or lives below one.
func (w *Workspace) owns(f *Folder) bool {
	if f == nil {
		return false
	}
	if w.isTopLevel(f) {
		return true
	}
	for _, top := range w.Folders() {
		if top.Contains(f) {
			return true
		}
	}
	return false
}

func (w *Workspace) checkFolder(f *Folder) error {
	if !w.owns(f) {
		name := ""
		if f != nil {
			name = f.Name
		}
		return &NotFoundError{Item: name}
	}
	return nil
}

// CreateDocument appends an empty document to parent. The document suffix
// is added to name when missing.
func (w *Workspace) CreateDocument(parent *Folder, name string) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == Suffix {
		return nil, ErrInvalidName
	}
	if err := w.checkFolder(parent); err != nil {
		return nil, err
	}
	doc := NewDocument(withSuffix(name))
	parent.Items = append(parent.Items, doc)
	parent.Modified = Now()
	return doc, nil
}

// CreateFolder appends an empty folder to parent.
func (w *Workspace) CreateFolder(parent *Folder, name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if err := w.checkFolder(parent); err != nil {
		return nil, err
	}
	folder := NewFolder(name)
	parent.Items = append(parent.Items, folder)
	parent.Modified = Now()
	return folder, nil
}

// Move relocates item from src to dst at index. An index of AtEnd, or any
// index past the end, appends. When src and dst are the same folder the
// index refers to the order after item is taken out.
//
// Moving a folder into itself or one of its descendants fails with a
// *CycleError; an item missing from src fails with a *NotFoundError. In
// both cases the tree is unchanged.
func (w *Workspace) Move(item Item, src, dst *Folder, index int) error {
	if err := w.checkFolder(src); err != nil {
		return err
	}
	if err := w.checkFolder(dst); err != nil {
		return err
	}
	i := src.IndexOf(item)
	if i < 0 {
		return &NotFoundError{Item: itemName(item), Folder: src.Name}
	}
	if f, ok := item.(*Folder); ok {
		if f == dst || f.Contains(dst) {
			return &CycleError{Folder: f.Name, Destination: dst.Name}
		}
	}

	src.remove(i)
	dst.insert(item, index)

	now := Now()
	src.Modified = now
	dst.Modified = now
	touch(item, now)
	return nil
}

// MoveToTrash moves item from src to the end of Trash. Items already in
// Trash stay where they are.
func (w *Workspace) MoveToTrash(item Item, src *Folder) error {
	if src == w.Trash {
		return nil
	}
	return w.Move(item, src, w.Trash, AtEnd)
}

// MoveToResearch moves item from src to the end of Research.
func (w *Workspace) MoveToResearch(item Item, src *Folder) error {
	return w.Move(item, src, w.Research, AtEnd)
}

// EmptyTrash permanently discards everything in Trash and returns the
// number of top-level items removed. Current is cleared when it pointed into
// Trash. Confirmation is the caller's job.
func (w *Workspace) EmptyTrash() int {
	if w.Current != nil && w.Trash.Contains(w.Current) {
		w.Current = nil
	}
	n := len(w.Trash.Items)
	w.Trash.Items = nil
	if n > 0 {
		w.Trash.Modified = Now()
	}
	return n
}

// Rename sets item's name and updates its modification time. Document names
// get the persisted suffix. Research and Trash cannot be renamed; the root
// can, and callers should check IsRoot to save the workspace afterwards.
func (w *Workspace) Rename(item Item, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	switch v := item.(type) {
	case *Document:
		if name == Suffix {
			return ErrInvalidName
		}
		if _, ok := w.ParentOf(v); !ok {
			return &NotFoundError{Item: v.Name}
		}
		v.Name = withSuffix(name)
		v.Modified = Now()
	case *Folder:
		if w.IsSpecial(v) {
			return ErrSpecialFolder
		}
		if !w.owns(v) {
			return &NotFoundError{Item: v.Name}
		}
		v.Name = name
		v.Modified = Now()
	default:
		return &NotFoundError{Item: itemName(item)}
	}
	return nil
}

// Open makes doc the current document.
func (w *Workspace) Open(doc *Document) error {
	if _, ok := w.ParentOf(doc); !ok {
		return &NotFoundError{Item: itemName(doc)}
	}
	w.Current = doc
	return nil
}

// WordCount totals the words in the root folder.
func (w *Workspace) WordCount() int {
	return w.Root.WordCount()
}

func touch(item Item, now Timestamp) {
	switch v := item.(type) {
	case *Document:
		v.Modified = now
	case *Folder:
		v.Modified = now
	}
}

func itemName(item Item) string {
	if item == nil {
		return ""
	}
	switch v := item.(type) {
	case *Document:
		if v == nil {
			return ""
		}
	case *Folder:
		if v == nil {
			return ""
		}
	}
	return item.ItemName()
}
