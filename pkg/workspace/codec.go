package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/history"
)

const (
	typeDocument = "document"
	typeFolder   = "folder"
)

type documentRecord struct {
	Name      string            `json:"name"`
	Content   content.Content   `json:"content"`
	Created   Timestamp         `json:"created"`
	Modified  Timestamp         `json:"modified"`
	Type      string            `json:"type"`
	UndoStack []content.Content `json:"undo_stack"`
	RedoStack []content.Content `json:"redo_stack"`
	ID        string            `json:"id,omitempty"`
}

type folderRecord struct {
	Name     string            `json:"name"`
	Items    []json.RawMessage `json:"items"`
	Created  Timestamp         `json:"created"`
	Modified Timestamp         `json:"modified"`
	Type     string            `json:"type"`
	ID       string            `json:"id,omitempty"`
}

type workspaceRecord struct {
	RootFolder      json.RawMessage `json:"root_folder"`
	ResearchFolder  json.RawMessage `json:"research_folder"`
	TrashFolder     json.RawMessage `json:"trash_folder"`
	CurrentDocument json.RawMessage `json:"current_document"`
}

// Marshal encodes the workspace in the project file layout with two-space
// indentation.
func Marshal(w *Workspace) ([]byte, error) {
	rec := workspaceRecord{CurrentDocument: json.RawMessage("null")}
	var err error
	if rec.RootFolder, err = encodeItem(w.Root); err != nil {
		return nil, fmt.Errorf("failed to encode root folder: %w", err)
	}
	if rec.ResearchFolder, err = encodeItem(w.Research); err != nil {
		return nil, fmt.Errorf("failed to encode research folder: %w", err)
	}
	if rec.TrashFolder, err = encodeItem(w.Trash); err != nil {
		return nil, fmt.Errorf("failed to encode trash folder: %w", err)
	}
	if w.Current != nil {
		if rec.CurrentDocument, err = encodeItem(w.Current); err != nil {
			return nil, fmt.Errorf("failed to encode current document: %w", err)
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalDocument encodes a single document record.
func MarshalDocument(d *Document) ([]byte, error) {
	return encodeItem(d)
}

func encodeItem(item Item) (json.RawMessage, error) {
	switch v := item.(type) {
	case *Document:
		rec := documentRecord{
			Name:      v.Name,
			Content:   v.Content,
			Created:   v.Created,
			Modified:  v.Modified,
			Type:      typeDocument,
			UndoStack: []content.Content{},
			RedoStack: []content.Content{},
			ID:        v.ID,
		}
		if rec.Content == nil {
			rec.Content = content.Content{}
		}
		if v.History != nil {
			if s := v.History.UndoStack(); s != nil {
				rec.UndoStack = s
			}
			if s := v.History.RedoStack(); s != nil {
				rec.RedoStack = s
			}
		}
		return json.Marshal(rec)
	case *Folder:
		rec := folderRecord{
			Name:     v.Name,
			Items:    make([]json.RawMessage, 0, len(v.Items)),
			Created:  v.Created,
			Modified: v.Modified,
			Type:     typeFolder,
			ID:       v.ID,
		}
		for _, child := range v.Items {
			data, err := encodeItem(child)
			if err != nil {
				return nil, err
			}
			rec.Items = append(rec.Items, data)
		}
		return json.Marshal(rec)
	}
	return nil, fmt.Errorf("unsupported item type %T", item)
}

// Unmarshal decodes a project file. Missing Research or Trash folders are
// created empty. The whole file is decoded before anything is returned, so a
// *FormatError never leaves a partial workspace behind.
//
// A saved current document is matched to the tree document with the same
// id, or for files without ids, the same name, creation time and content.
// If neither matches, Current is left nil.
func Unmarshal(data []byte) (*Workspace, error) {
	fields, err := decodeObject(data, "$")
	if err != nil {
		return nil, err
	}
	rootRaw, ok := present(fields, "root_folder")
	if !ok {
		return nil, &FormatError{Path: "root_folder", Reason: "missing root folder"}
	}

	w := &Workspace{}
	if w.Root, err = decodeFolder(rootRaw, "root_folder"); err != nil {
		return nil, err
	}
	if raw, ok := present(fields, "research_folder"); ok {
		if w.Research, err = decodeFolder(raw, "research_folder"); err != nil {
			return nil, err
		}
	} else {
		w.Research = NewFolder(ResearchName)
	}
	if raw, ok := present(fields, "trash_folder"); ok {
		if w.Trash, err = decodeFolder(raw, "trash_folder"); err != nil {
			return nil, err
		}
	} else {
		w.Trash = NewFolder(TrashName)
	}

	if raw, ok := present(fields, "current_document"); ok {
		saved, err := decodeDocument(raw, "current_document")
		if err != nil {
			return nil, err
		}
		w.Current = w.matchDocument(saved)
	}
	return w, nil
}

// UnmarshalDocument reads the older single-document file layout into a new
// workspace holding that document as the current one.
func UnmarshalDocument(data []byte) (*Workspace, error) {
	doc, err := decodeDocument(data, "$")
	if err != nil {
		return nil, err
	}
	w := New(DefaultRootName)
	w.Root.Items = append(w.Root.Items, doc)
	w.Current = doc
	return w, nil
}

// IsDocumentFile reports whether data looks like a single document rather
// than a workspace.
func IsDocumentFile(data []byte) bool {
	var probe struct {
		Root *json.RawMessage `json:"root_folder"`
		Name *json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Root == nil && probe.Name != nil
}

func (w *Workspace) matchDocument(saved *Document) *Document {
	docs := w.Documents()
	for _, d := range docs {
		if d.ID == saved.ID {
			return d
		}
	}
	for _, d := range docs {
		if d.Name == saved.Name && d.Created.Equal(saved.Created.Time) && d.Content.Equal(saved.Content) {
			return d
		}
	}
	return nil
}

func decodeItem(data []byte, path string) (Item, error) {
	fields, err := decodeObject(data, path)
	if err != nil {
		return nil, err
	}
	kind, err := requireString(fields, "type", path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case typeDocument:
		return decodeDocumentFields(fields, path)
	case typeFolder:
		return decodeFolderFields(fields, path)
	}
	return nil, &FormatError{Path: path + ".type", Reason: fmt.Sprintf("unknown item type %q", kind)}
}

func decodeFolder(data []byte, path string) (*Folder, error) {
	item, err := decodeItem(data, path)
	if err != nil {
		return nil, err
	}
	f, ok := item.(*Folder)
	if !ok {
		return nil, &FormatError{Path: path + ".type", Reason: "expected a folder"}
	}
	return f, nil
}

func decodeDocument(data []byte, path string) (*Document, error) {
	item, err := decodeItem(data, path)
	if err != nil {
		return nil, err
	}
	d, ok := item.(*Document)
	if !ok {
		return nil, &FormatError{Path: path + ".type", Reason: "expected a document"}
	}
	return d, nil
}

func decodeFolderFields(fields map[string]json.RawMessage, path string) (*Folder, error) {
	name, err := requireString(fields, "name", path)
	if err != nil {
		return nil, err
	}
	itemsRaw, ok := present(fields, "items")
	if !ok {
		return nil, &FormatError{Path: path + ".items", Reason: "missing items"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, &FormatError{Path: path + ".items", Reason: "items must be a list", Err: err}
	}

	f := &Folder{Name: name, Items: make([]Item, 0, len(items))}
	if f.ID, err = optionalID(fields, path); err != nil {
		return nil, err
	}
	if f.Created, f.Modified, err = decodeTimes(fields, path); err != nil {
		return nil, err
	}
	for i, raw := range items {
		item, err := decodeItem(raw, fmt.Sprintf("%s.items[%d]", path, i))
		if err != nil {
			return nil, err
		}
		f.Items = append(f.Items, item)
	}
	return f, nil
}

func decodeDocumentFields(fields map[string]json.RawMessage, path string) (*Document, error) {
	name, err := requireString(fields, "name", path)
	if err != nil {
		return nil, err
	}
	contentRaw, ok := fields["content"]
	if !ok {
		return nil, &FormatError{Path: path + ".content", Reason: "missing content"}
	}
	var body content.Content
	if err := json.Unmarshal(contentRaw, &body); err != nil {
		return nil, &FormatError{Path: path + ".content", Reason: "malformed content", Err: err}
	}
	if body == nil {
		body = content.Content{}
	}

	d := &Document{Name: name, Content: body}
	if d.ID, err = optionalID(fields, path); err != nil {
		return nil, err
	}
	if d.Created, d.Modified, err = decodeTimes(fields, path); err != nil {
		return nil, err
	}

	undo, err := decodeStack(fields, "undo_stack", path)
	if err != nil {
		return nil, err
	}
	redo, err := decodeStack(fields, "redo_stack", path)
	if err != nil {
		return nil, err
	}
	d.History = &history.Manager{}
	d.History.Restore(undo, redo, d.Content)
	return d, nil
}

func decodeStack(fields map[string]json.RawMessage, key, path string) ([]content.Content, error) {
	raw, ok := present(fields, key)
	if !ok {
		return nil, nil
	}
	var stack []content.Content
	if err := json.Unmarshal(raw, &stack); err != nil {
		return nil, &FormatError{Path: path + "." + key, Reason: "malformed history", Err: err}
	}
	return stack, nil
}

func decodeTimes(fields map[string]json.RawMessage, path string) (Timestamp, Timestamp, error) {
	created := Now()
	if raw, ok := present(fields, "created"); ok {
		if err := json.Unmarshal(raw, &created); err != nil {
			return Timestamp{}, Timestamp{}, &FormatError{Path: path + ".created", Reason: "malformed timestamp", Err: err}
		}
	}
	modified := created
	if raw, ok := present(fields, "modified"); ok {
		if err := json.Unmarshal(raw, &modified); err != nil {
			return Timestamp{}, Timestamp{}, &FormatError{Path: path + ".modified", Reason: "malformed timestamp", Err: err}
		}
	}
	return created, modified, nil
}

func optionalID(fields map[string]json.RawMessage, path string) (string, error) {
	raw, ok := present(fields, "id")
	if !ok {
		return newID(), nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil || id == "" {
		return "", &FormatError{Path: path + ".id", Reason: "id must be a non-empty string", Err: err}
	}
	return id, nil
}

func decodeObject(data []byte, path string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &FormatError{Path: path, Reason: "expected an object", Err: err}
	}
	if fields == nil {
		return nil, &FormatError{Path: path, Reason: "expected an object, got null"}
	}
	return fields, nil
}

func requireString(fields map[string]json.RawMessage, key, path string) (string, error) {
	raw, ok := present(fields, key)
	if !ok {
		return "", &FormatError{Path: path + "." + key, Reason: "missing " + key}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &FormatError{Path: path + "." + key, Reason: key + " must be a string", Err: err}
	}
	return s, nil
}

// present returns the raw value of key when it exists and is not null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}
