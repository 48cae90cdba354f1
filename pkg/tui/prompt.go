package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptNewDocument promptKind = iota
	promptNewFolder
	promptRename
	promptSearch
)

func (k promptKind) label() string {
	switch k {
	case promptNewDocument:
		return "New document"
	case promptNewFolder:
		return "New folder"
	case promptRename:
		return "Rename"
	case promptSearch:
		return "Search"
	}
	return ""
}

// NamePrompt is the one-line input used for names and search queries
type NamePrompt struct {
	input  textinput.Model
	kind   promptKind
	active bool
}

// NewNamePrompt creates an inactive prompt
func NewNamePrompt() *NamePrompt {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	return &NamePrompt{input: ti}
}

// Open focuses the prompt with an initial value
func (p *NamePrompt) Open(kind promptKind, value string) tea.Cmd {
	p.kind = kind
	p.active = true
	p.input.Placeholder = kind.label()
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close hides the prompt
func (p *NamePrompt) Close() {
	p.active = false
	p.input.Blur()
}

// Active reports whether the prompt is taking input
func (p *NamePrompt) Active() bool {
	return p.active
}

// Value returns the text typed so far
func (p *NamePrompt) Value() string {
	return p.input.Value()
}

// SetWidth fits the input into width cells
func (p *NamePrompt) SetWidth(width int) {
	w := width - len(p.kind.label()) - 8
	if w < 10 {
		w = 10
	}
	p.input.Width = w
}

// Update forwards messages to the text input
func (p *NamePrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the label and the input
func (p *NamePrompt) View() string {
	if !p.active {
		return ""
	}
	return InputStyle.Render(HeaderStyle.Render(p.kind.label()+": ") + p.input.View())
}
