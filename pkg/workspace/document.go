package workspace

import (
	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/history"
)

// Document is a named piece of writing with its own undo history.
type Document struct {
	ID       string
	Name     string
	Content  content.Content
	Created  Timestamp
	Modified Timestamp
	History  *history.Manager
}

// NewDocument returns an empty document with a fresh history.
func NewDocument(name string) *Document {
	now := Now()
	return &Document{
		ID:       newID(),
		Name:     name,
		Content:  content.Content{},
		Created:  now,
		Modified: now,
		History:  history.New(content.Content{}),
	}
}

func (d *Document) ItemID() string   { return d.ID }
func (d *Document) ItemName() string { return d.Name }
func (d *Document) isItem()          {}

// DisplayName returns the name without the persisted suffix.
func (d *Document) DisplayName() string {
	return StripSuffix(d.Name)
}

// Commit applies an edit. It records one history entry and updates Modified
// only when c differs from the current content, and reports whether it did.
func (d *Document) Commit(c content.Content) bool {
	if c.Equal(d.Content) {
		return false
	}
	d.Content = c.Clone()
	d.history().Record(d.Content)
	d.Modified = Now()
	return true
}

// Undo steps back one history entry and reports whether there was one to
// step back to. Adjacent equal entries still count as a step.
func (d *Document) Undo() bool {
	h := d.history()
	if !h.CanUndo() {
		return false
	}
	d.apply(h.Undo())
	return true
}

// Redo reapplies the last undone entry and reports whether there was one.
func (d *Document) Redo() bool {
	h := d.history()
	if !h.CanRedo() {
		return false
	}
	d.apply(h.Redo())
	return true
}

func (d *Document) apply(c content.Content) {
	if c.Equal(d.Content) {
		return
	}
	d.Content = c
	d.Modified = Now()
}

// history lazily attaches a manager to documents built without one.
func (d *Document) history() *history.Manager {
	if d.History == nil {
		d.History = history.New(d.Content)
	}
	return d.History
}

func (d *Document) PlainText() string { return d.Content.PlainText() }

func (d *Document) WordCount() int { return d.Content.WordCount() }
