package workspace

import (
	"errors"
	"strings"
)

// WalkFunc is called for every item. parent is nil for the top-level
// folders, whose depth is 0.
type WalkFunc func(item Item, parent *Folder, depth int) error

// SkipFolder returned by a WalkFunc for a folder skips its contents.
var SkipFolder = errors.New("skip this folder")

// Walk visits the root folder, then Research, then Trash, each in pre-order
// following item order. A non-nil error other than SkipFolder stops the walk.
func (w *Workspace) Walk(fn WalkFunc) error {
	for _, top := range w.Folders() {
		if err := walkItem(top, nil, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkItem(item Item, parent *Folder, depth int, fn WalkFunc) error {
	err := fn(item, parent, depth)
	switch v := item.(type) {
	case *Document:
		if errors.Is(err, SkipFolder) {
			return nil
		}
		return err
	case *Folder:
		if errors.Is(err, SkipFolder) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, child := range v.Items {
			if err := walkItem(child, v, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

var errStop = errors.New("stop")

// ParentOf returns the folder that directly holds item. Top-level folders
// have no parent.
func (w *Workspace) ParentOf(item Item) (*Folder, bool) {
	var found *Folder
	_ = w.Walk(func(it Item, parent *Folder, _ int) error {
		if it == item && parent != nil {
			found = parent
			return errStop
		}
		return nil
	})
	return found, found != nil
}

// FindByID returns the item with the given id.
func (w *Workspace) FindByID(id string) (Item, bool) {
	var found Item
	_ = w.Walk(func(it Item, _ *Folder, _ int) error {
		if it.ItemID() == id {
			found = it
			return errStop
		}
		return nil
	})
	return found, found != nil
}

// FirstDocument returns the first document in walk order, or nil.
func (w *Workspace) FirstDocument() *Document {
	var found *Document
	_ = w.Walk(func(it Item, _ *Folder, _ int) error {
		if doc, ok := it.(*Document); ok {
			found = doc
			return errStop
		}
		return nil
	})
	return found
}

// Documents returns every document in walk order.
func (w *Workspace) Documents() []*Document {
	var docs []*Document
	_ = w.Walk(func(it Item, _ *Folder, _ int) error {
		if doc, ok := it.(*Document); ok {
			docs = append(docs, doc)
		}
		return nil
	})
	return docs
}

// PathOf returns the slash-separated display path of item, starting with
// the name of its top-level folder.
func (w *Workspace) PathOf(item Item) string {
	var names []string
	found := false
	_ = w.Walk(func(it Item, _ *Folder, depth int) error {
		names = append(names[:depth], it.DisplayName())
		if it == item {
			found = true
			return errStop
		}
		return nil
	})
	if !found {
		return ""
	}
	return strings.Join(names, "/")
}

// Resolve finds the item at path and its parent folder. Path elements are
// display names separated by slashes. A path may start with the name of a
// top-level folder; otherwise it is relative to the root. When the first
// element names both a child of the root and a top-level folder, the root's
// child is tried first. The empty path and "/" name the root, which has no
// parent.
func (w *Workspace) Resolve(path string) (Item, *Folder, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return w.Root, nil, nil
	}

	var top *Folder
	for _, f := range w.Folders() {
		if parts[0] == f.Name {
			top = f
			break
		}
	}
	if top == nil {
		return resolveIn(w.Root, parts)
	}
	if lookupChild(w.Root, parts[0]) != nil {
		if item, parent, err := resolveIn(w.Root, parts); err == nil {
			return item, parent, nil
		}
	}
	if len(parts) == 1 {
		return top, nil, nil
	}
	return resolveIn(top, parts[1:])
}

// resolveIn walks parts downward from start.
func resolveIn(start *Folder, parts []string) (Item, *Folder, error) {
	current := start
	for i, part := range parts {
		child := lookupChild(current, part)
		if child == nil {
			return nil, nil, &NotFoundError{Item: part, Folder: current.Name}
		}
		if i == len(parts)-1 {
			return child, current, nil
		}
		next, ok := child.(*Folder)
		if !ok {
			return nil, nil, &NotFoundError{Item: strings.Join(parts[i+1:], "/"), Folder: child.DisplayName()}
		}
		current = next
	}
	return nil, nil, &NotFoundError{Item: strings.Join(parts, "/")}
}

// ResolveFolder resolves path and requires the result to be a folder.
func (w *Workspace) ResolveFolder(path string) (*Folder, error) {
	item, _, err := w.Resolve(path)
	if err != nil {
		return nil, err
	}
	f, ok := item.(*Folder)
	if !ok {
		return nil, &NotFoundError{Item: path + " (not a folder)"}
	}
	return f, nil
}

// ResolveDocument resolves path and requires the result to be a document.
func (w *Workspace) ResolveDocument(path string) (*Document, *Folder, error) {
	item, parent, err := w.Resolve(path)
	if err != nil {
		return nil, nil, err
	}
	d, ok := item.(*Document)
	if !ok {
		return nil, nil, &NotFoundError{Item: path + " (not a document)"}
	}
	return d, parent, nil
}

func lookupChild(f *Folder, name string) Item {
	for _, it := range f.Items {
		switch v := it.(type) {
		case *Document:
			if v.DisplayName() == name || v.Name == name {
				return v
			}
		case *Folder:
			if v.Name == name {
				return v
			}
		}
	}
	return nil
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
