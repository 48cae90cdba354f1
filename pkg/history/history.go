// Package history implements bounded, linear undo/redo over full content
// snapshots. Every snapshot is a deep copy, so callers may keep mutating the
// values they pass in.
//
// A Manager is not safe for concurrent use.
package history

import "github.com/shokunin/langotango/pkg/content"

// MaxStates bounds both the undo and the redo stack.
const MaxStates = 50

// Manager holds an undo stack whose top is the current state and a redo
// stack of states that were undone.
type Manager struct {
	undo []content.Content
	redo []content.Content
}

// New returns a manager initialized with initial as its only state.
func New(initial content.Content) *Manager {
	m := &Manager{}
	m.Initialize(initial)
	return m
}

// Initialize makes c the sole undo entry and clears the redo stack.
func (m *Manager) Initialize(c content.Content) {
	m.undo = []content.Content{c.Clone()}
	m.redo = nil
}

// Record pushes a committed state. The oldest entry is evicted beyond
// MaxStates and the redo stack is cleared.
//
// Callers should skip recording a state equal to Current.
func (m *Manager) Record(c content.Content) {
	m.undo = push(m.undo, c.Clone())
	m.redo = nil
}

// Undo moves the current state onto the redo stack and returns the prior
// state. At the oldest state it returns the current state and changes nothing.
func (m *Manager) Undo() content.Content {
	if len(m.undo) <= 1 {
		return m.Current()
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = push(m.redo, top)
	return m.Current()
}

// Redo reapplies the most recently undone state and returns it. With nothing
// to redo it returns the current state.
func (m *Manager) Redo() content.Content {
	if len(m.redo) == 0 {
		return m.Current()
	}
	top := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = push(m.undo, top)
	return top.Clone()
}

// CanUndo reports whether there is an earlier entry to step back to.
func (m *Manager) CanUndo() bool { return len(m.undo) > 1 }

// CanRedo reports whether there is an undone state to reapply.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Current returns a copy of the top of the undo stack, or nil for a manager
// that was never initialized.
func (m *Manager) Current() content.Content {
	if len(m.undo) == 0 {
		return nil
	}
	return m.undo[len(m.undo)-1].Clone()
}

// UndoStack returns copies of the undo entries, oldest first.
func (m *Manager) UndoStack() []content.Content { return cloneAll(m.undo) }

// RedoStack returns copies of the redo entries, oldest first.
func (m *Manager) RedoStack() []content.Content { return cloneAll(m.redo) }

// Restore rebuilds the manager from persisted stacks. Only the newest
// MaxStates entries of each stack are kept. An empty undo stack is
// initialized with current.
func (m *Manager) Restore(undo, redo []content.Content, current content.Content) {
	if len(undo) == 0 {
		m.Initialize(current)
		m.redo = cloneAll(newest(redo))
		return
	}
	m.undo = cloneAll(newest(undo))
	m.redo = cloneAll(newest(redo))
}

func push(stack []content.Content, c content.Content) []content.Content {
	stack = append(stack, c)
	if over := len(stack) - MaxStates; over > 0 {
		// Copy down so the evicted entries are released.
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}

func newest(stack []content.Content) []content.Content {
	if len(stack) > MaxStates {
		return stack[len(stack)-MaxStates:]
	}
	return stack
}

func cloneAll(stack []content.Content) []content.Content {
	if len(stack) == 0 {
		return nil
	}
	out := make([]content.Content, len(stack))
	for i, c := range stack {
		out[i] = c.Clone()
	}
	return out
}
