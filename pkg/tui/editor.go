package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/workspace"
)

// editorFinishedMsg reports the text saved by the external editor.
type editorFinishedMsg struct {
	doc  *workspace.Document
	path string
	err  error
}

// resolveEditor picks the configured editor, then $EDITOR, then vi.
func resolveEditor(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// parseEditor splits an editor setting such as "code --wait" into the
// command and its arguments.
func parseEditor(editor string) (string, []string) {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func createEditorCommand(editor, path string) *exec.Cmd {
	name, args := parseEditor(editor)
	return exec.Command(name, append(args, path)...)
}

// editDocument writes the document as Markdown to a temp file and suspends
// the program while the editor runs.
func editDocument(editor string, doc *workspace.Document) tea.Cmd {
	if strings.ContainsAny(editor, "&|;<>$`\\\"'") {
		return statusCmd("Invalid editor setting: contains shell metacharacters")
	}

	tmp, err := os.CreateTemp("", "langotango-*.md")
	if err != nil {
		return statusCmd(fmt.Sprintf("Failed to create temp file: %v", err))
	}
	path := tmp.Name()
	_, err = tmp.WriteString(doc.Content.Markdown())
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return statusCmd(fmt.Sprintf("Failed to write temp file: %v", err))
	}

	return tea.ExecProcess(createEditorCommand(editor, path), func(err error) tea.Msg {
		return editorFinishedMsg{doc: doc, path: path, err: err}
	})
}

// readEdited parses the editor's file back into content and removes it.
func readEdited(path string) (content.Content, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return content.FromMarkdown(data)
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(msg) }
}

func removeQuietly(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(path)
}
