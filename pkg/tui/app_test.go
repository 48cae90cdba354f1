package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/files"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/workspace"
)

type testProject struct {
	ws   *workspace.Workspace
	part *workspace.Folder
	ch1  *workspace.Document
	path string
}

func newTestProject(t *testing.T) testProject {
	t.Helper()
	ws := workspace.New("Novel")
	part, err := ws.CreateFolder(ws.Root, "Part One")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	ch1, err := ws.CreateDocument(part, "Chapter 1")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	ch1.Commit(content.FromPlainText("one two three"))
	if err := ws.Open(ch1); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return testProject{ws: ws, part: part, ch1: ch1, path: filepath.Join(t.TempDir(), "novel.lango")}
}

func newTestApp(t *testing.T, p testProject) *App {
	t.Helper()
	settings := models.DefaultSettings()
	settings.Project.AutoSaveSeconds = 0
	a := NewApp(p.ws, Options{
		Path:     p.path,
		Settings: settings,
		Logger:   zerolog.Nop(),
		Save:     files.SaveOptions{Logger: zerolog.Nop()},
	})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return a
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func TestNewAppSelectsCurrentDocument(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	if got := a.selectedItem(); got != p.ch1 {
		t.Errorf("selected %v, want Chapter 1", got)
	}
	if !a.collapsed[p.ws.Trash.ID] {
		t.Errorf("Trash should start collapsed")
	}
	// Novel, Part One, Chapter 1, Research, Trash
	if len(a.rows) != 5 {
		t.Errorf("len(rows) = %d, want 5", len(a.rows))
	}
}

func TestTreeNavigation(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("k"))
	if a.selectedItem() != p.part {
		t.Fatalf("k should select Part One")
	}

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if len(a.rows) != 4 {
		t.Errorf("collapsed Part One: len(rows) = %d, want 4", len(a.rows))
	}
	press(a, keys("l"))
	if len(a.rows) != 5 {
		t.Errorf("expanded Part One: len(rows) = %d, want 5", len(a.rows))
	}

	press(a, keys("G"))
	if a.selectedItem() != p.ws.Trash {
		t.Errorf("G should select the last row")
	}
	press(a, keys("g"))
	if a.selectedItem() != p.ws.Root {
		t.Errorf("g should select the root")
	}
}

func TestOpenDocument(t *testing.T) {
	p := newTestProject(t)
	ch2, _ := p.ws.CreateDocument(p.part, "Chapter 2")
	a := newTestApp(t, p)

	press(a, keys("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if p.ws.Current != ch2 {
		t.Errorf("Current = %v, want Chapter 2", p.ws.Current)
	}
	if a.statusMsg != "Opened Chapter 2" {
		t.Errorf("statusMsg = %q", a.statusMsg)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	p := newTestProject(t)
	p.ch1.Commit(content.FromPlainText("one two three four"))
	a := newTestApp(t, p)

	press(a, keys("u"))
	if got := p.ch1.PlainText(); got != "one two three" {
		t.Errorf("after undo: %q", got)
	}
	press(a, tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := p.ch1.PlainText(); got != "one two three four" {
		t.Errorf("after redo: %q", got)
	}
	press(a, keys("U"))
	if a.statusMsg != "Nothing to redo" {
		t.Errorf("statusMsg = %q, want Nothing to redo", a.statusMsg)
	}
}

func TestTrashAndEmptyTrash(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("t"))
	if !p.ws.Trash.Contains(p.ch1) {
		t.Fatalf("Chapter 1 should be in the Trash")
	}
	if len(p.part.Items) != 0 {
		t.Errorf("Part One should be empty")
	}

	delete(a.collapsed, p.ws.Trash.ID)
	a.refreshRows()
	a.selectItem(p.ch1)
	press(a, keys("t"))
	if a.statusMsg != "Chapter 1 is already in the Trash" {
		t.Errorf("statusMsg = %q", a.statusMsg)
	}
	if len(p.ws.Trash.Items) != 1 {
		t.Errorf("Trash has %d items, want 1", len(p.ws.Trash.Items))
	}

	press(a, keys("E"))
	if !a.confirm.Active() {
		t.Fatalf("emptying the Trash should ask first")
	}
	press(a, keys("n"))
	if len(p.ws.Trash.Items) != 1 {
		t.Errorf("declining should keep the Trash")
	}

	press(a, keys("E"), keys("y"))
	if len(p.ws.Trash.Items) != 0 {
		t.Errorf("Trash should be empty, has %d items", len(p.ws.Trash.Items))
	}
}

func TestMoveToResearch(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("r"))
	if !p.ws.Research.Contains(p.ch1) {
		t.Errorf("Chapter 1 should be in Research")
	}

	press(a, keys("g"), keys("r"))
	if a.statusMsg != "Top-level folders cannot be moved" {
		t.Errorf("statusMsg = %q", a.statusMsg)
	}
}

func TestNewDocumentPrompt(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("k"), keys("n"))
	if !a.prompt.Active() {
		t.Fatalf("n should open the name prompt")
	}
	press(a, keys("Chapter 2"), tea.KeyMsg{Type: tea.KeyEnter})

	if len(p.part.Items) != 2 {
		t.Fatalf("Part One has %d items, want 2", len(p.part.Items))
	}
	doc := p.part.Items[1].(*workspace.Document)
	if doc.DisplayName() != "Chapter 2" {
		t.Errorf("new document = %q", doc.DisplayName())
	}
	if p.ws.Current != doc || a.selectedItem() != doc {
		t.Errorf("the new document should be opened and selected")
	}
}

func TestNewFolderPromptCancel(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("N"), keys("Part Two"), tea.KeyMsg{Type: tea.KeyEsc})
	if a.prompt.Active() {
		t.Errorf("esc should close the prompt")
	}
	if len(p.ws.Root.Items) != 1 {
		t.Errorf("cancelled prompt created a folder")
	}
}

func TestRenamePrompt(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	press(a, keys("R"))
	if got := a.prompt.Value(); got != "Chapter 1" {
		t.Errorf("prompt prefilled with %q", got)
	}
	for range "Chapter 1" {
		press(a, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(a, keys("Prologue"), tea.KeyMsg{Type: tea.KeyEnter})
	if p.ch1.DisplayName() != "Prologue" {
		t.Errorf("DisplayName = %q, want Prologue", p.ch1.DisplayName())
	}

	press(a, keys("G"), keys("R"))
	if a.prompt.Active() {
		t.Errorf("Trash cannot be renamed")
	}
}

func TestSearchJumpsToMatch(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)
	a.collapsed[p.part.ID] = true
	a.refreshRows()
	press(a, keys("g"))

	press(a, keys("/"), keys("THREE"), tea.KeyMsg{Type: tea.KeyEnter})
	if a.selectedItem() != p.ch1 {
		t.Errorf("search should select Chapter 1")
	}
	if a.collapsed[p.part.ID] {
		t.Errorf("search should expand the folder holding the match")
	}

	press(a, keys("/"), keys("missing"), tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(a.statusMsg, "No documents contain") {
		t.Errorf("statusMsg = %q", a.statusMsg)
	}
}

func TestSaveKey(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	cmd := press(a, keys("s"))
	if cmd == nil {
		t.Fatalf("s should return a save command")
	}
	a.Update(cmd())

	if _, err := os.Stat(p.path); err != nil {
		t.Fatalf("project not written: %v", err)
	}
	if a.Dirty() {
		t.Errorf("workspace should be clean after saving")
	}
	loaded, err := files.Load(p.path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.WordCount() != 3 {
		t.Errorf("loaded WordCount = %d, want 3", loaded.WordCount())
	}
}

func TestAutoSaveSkipsUnchanged(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	if cmd := a.saveCmd(true); cmd != nil {
		t.Errorf("auto-save of an unchanged project should do nothing")
	}

	p.ch1.Commit(content.FromPlainText("changed"))
	cmd := a.saveCmd(true)
	if cmd == nil {
		t.Fatalf("auto-save should write a changed project")
	}
	msg := cmd().(savedMsg)
	if msg.err != nil || !msg.auto {
		t.Errorf("savedMsg = %+v", msg)
	}
	if a.Dirty() {
		t.Errorf("workspace should be clean after auto-save")
	}
}

func TestQuitAsksWhenDirty(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	cmd := press(a, keys("q"))
	if cmd == nil {
		t.Fatalf("q on a clean project should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}

	p.ch1.Commit(content.FromPlainText("changed"))
	if cmd := press(a, keys("q")); cmd != nil {
		t.Errorf("q on a modified project should ask first")
	}
	if !a.confirm.Active() {
		t.Fatalf("confirmation should be shown")
	}
	cmd = press(a, keys("y"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("saving should quit")
	}
	if _, err := os.Stat(p.path); err != nil {
		t.Errorf("project should be saved before quitting: %v", err)
	}
}

func TestStatusBarWordCounts(t *testing.T) {
	p := newTestProject(t)
	research, _ := p.ws.CreateDocument(p.ws.Research, "Notes")
	research.Commit(content.FromPlainText("not counted"))
	a := newTestApp(t, p)

	view := a.View()
	if !strings.Contains(view, "Current Document: 3 words | Total Project: 3 words") {
		t.Errorf("status bar missing from view:\n%s", view)
	}
}

func TestEditorFinished(t *testing.T) {
	p := newTestProject(t)
	a := newTestApp(t, p)

	path := filepath.Join(t.TempDir(), "edit.md")
	if err := os.WriteFile(path, []byte("one **two** three"), 0644); err != nil {
		t.Fatal(err)
	}
	a.Update(editorFinishedMsg{doc: p.ch1, path: path})
	if got := p.ch1.PlainText(); got != "one two three" {
		t.Errorf("PlainText = %q", got)
	}
	if !p.ch1.History.CanUndo() {
		t.Errorf("edit should be undoable")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file should be removed")
	}
}
