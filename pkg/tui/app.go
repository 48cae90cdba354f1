package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/shokunin/langotango/pkg/files"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/utils"
	"github.com/shokunin/langotango/pkg/workspace"
)

type pane int

const (
	treePane pane = iota
	previewPane
)

// Messages for communication between commands and the model
type StatusMsg string

type autosaveTickMsg time.Time

type savedMsg struct {
	auto bool
	err  error
}

// Options configure the browser
type Options struct {
	Path     string
	Settings *models.Settings
	Logger   zerolog.Logger
	Save     files.SaveOptions
}

// App browses and edits one project
type App struct {
	ws       *workspace.Workspace
	path     string
	settings *models.Settings
	log      zerolog.Logger
	saver    *files.AutoSaver

	rows      []treeRow
	cursor    int
	offset    int
	collapsed map[string]bool
	focus     pane

	preview viewport.Model
	prompt  *NamePrompt
	confirm *ConfirmationModel

	matches  []*workspace.Document
	matchIdx int

	width     int
	height    int
	statusMsg string
	showHelp  bool
}

// NewApp creates the browser for ws, which was loaded from opts.Path
func NewApp(ws *workspace.Workspace, opts Options) *App {
	settings := opts.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	interval := time.Duration(settings.Project.AutoSaveSeconds) * time.Second

	a := &App{
		ws:        ws,
		path:      opts.Path,
		settings:  settings,
		log:       opts.Logger,
		saver:     files.NewAutoSaver(opts.Path, interval, opts.Save),
		collapsed: map[string]bool{},
		preview:   viewport.New(80, 20),
		prompt:    NewNamePrompt(),
		confirm:   NewConfirmation(),
	}
	if data, _, err := a.saver.Snapshot(ws); err == nil {
		a.saver.MarkSaved(data)
	}

	a.collapsed[ws.Trash.ID] = true
	a.refreshRows()
	if ws.Current != nil {
		a.selectItem(ws.Current)
	}
	a.updatePreview()
	return a
}

func (a *App) Init() tea.Cmd {
	return a.scheduleAutosave()
}

func (a *App) scheduleAutosave() tea.Cmd {
	if !a.saver.Enabled() {
		return nil
	}
	return tea.Tick(a.saver.Interval, func(t time.Time) tea.Msg {
		return autosaveTickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case autosaveTickMsg:
		return a, tea.Batch(a.saveCmd(true), a.scheduleAutosave())

	case savedMsg:
		switch {
		case msg.err != nil:
			a.statusMsg = fmt.Sprintf("Save failed: %v", msg.err)
		case !msg.auto:
			a.statusMsg = "Saved " + a.path
		}
		return a, nil

	case editorFinishedMsg:
		return a, a.finishEdit(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		if a.prompt.Active() {
			return a, a.handlePromptKey(msg)
		}
		return a, a.handleKey(msg)
	}

	if a.focus == previewPane {
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.focus == previewPane {
		switch msg.String() {
		case "tab", "esc":
			a.focus = treePane
			return nil
		case "q":
			return a.quit()
		}
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return cmd
	}

	a.statusMsg = ""
	switch msg.String() {
	case "q":
		return a.quit()
	case "?":
		a.showHelp = !a.showHelp
	case "tab":
		a.focus = previewPane
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "home", "g":
		a.moveCursor(-len(a.rows))
	case "end", "G":
		a.moveCursor(len(a.rows))
	case "left", "h":
		a.collapseSelected()
	case "right", "l":
		a.expandSelected()
	case "enter":
		return a.activateSelected()
	case "e":
		if doc := a.targetDocument(); doc != nil {
			return editDocument(resolveEditor(a.settings.Editor.Command), doc)
		}
	case "u", "ctrl+z":
		a.undo()
	case "U", "ctrl+y":
		a.redo()
	case "n":
		if a.targetFolder() != nil {
			return a.prompt.Open(promptNewDocument, "")
		}
	case "N":
		if a.targetFolder() != nil {
			return a.prompt.Open(promptNewFolder, "")
		}
	case "R":
		if item := a.selectedItem(); item != nil {
			if f, ok := item.(*workspace.Folder); ok && a.ws.IsSpecial(f) {
				a.statusMsg = "Research and Trash cannot be renamed"
				return nil
			}
			return a.prompt.Open(promptRename, item.DisplayName())
		}
	case "t", "delete":
		a.moveSelected(a.ws.Trash)
	case "r":
		a.moveSelected(a.ws.Research)
	case "E":
		a.confirmEmptyTrash()
	case "/":
		return a.prompt.Open(promptSearch, "")
	case "]":
		a.nextMatch(1)
	case "[":
		a.nextMatch(-1)
	case "s", "ctrl+s":
		return a.saveCmd(false)
	}
	return nil
}

func (a *App) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.prompt.Close()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(a.prompt.Value())
		kind := a.prompt.kind
		a.prompt.Close()
		a.submitPrompt(kind, value)
		return nil
	}
	return a.prompt.Update(msg)
}

func (a *App) submitPrompt(kind promptKind, value string) {
	if kind == promptSearch {
		a.search(value)
		return
	}
	if value == "" {
		a.statusMsg = "Names cannot be empty"
		return
	}
	if strings.ContainsAny(value, `/\`) {
		a.statusMsg = "Names cannot contain / or \\"
		return
	}

	switch kind {
	case promptNewDocument:
		parent := a.targetFolder()
		if parent == nil {
			return
		}
		doc, err := a.ws.CreateDocument(parent, value)
		if err != nil {
			a.statusMsg = err.Error()
			return
		}
		_ = a.ws.Open(doc)
		a.afterChange(doc)
		a.statusMsg = "Created document " + doc.DisplayName()
	case promptNewFolder:
		parent := a.targetFolder()
		if parent == nil {
			return
		}
		f, err := a.ws.CreateFolder(parent, value)
		if err != nil {
			a.statusMsg = err.Error()
			return
		}
		a.afterChange(f)
		a.statusMsg = "Created folder " + f.Name
	case promptRename:
		item := a.selectedItem()
		if item == nil {
			return
		}
		if err := a.ws.Rename(item, value); err != nil {
			a.statusMsg = err.Error()
			return
		}
		a.afterChange(item)
		a.statusMsg = "Renamed to " + item.DisplayName()
	}
}

func (a *App) activateSelected() tea.Cmd {
	r, ok := a.selectedRow()
	if !ok {
		return nil
	}
	if f, ok := r.folder(); ok {
		a.collapsed[f.ID] = !a.collapsed[f.ID]
		a.refreshRows()
		return nil
	}
	doc, _ := r.document()
	if err := a.ws.Open(doc); err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	a.statusMsg = "Opened " + doc.DisplayName()
	a.updatePreview()
	return nil
}

func (a *App) undo() {
	doc := a.targetDocument()
	if doc == nil {
		return
	}
	if !doc.Undo() {
		a.statusMsg = "Nothing to undo"
		return
	}
	a.statusMsg = "Undo: " + doc.DisplayName()
	a.updatePreview()
}

func (a *App) redo() {
	doc := a.targetDocument()
	if doc == nil {
		return
	}
	if !doc.Redo() {
		a.statusMsg = "Nothing to redo"
		return
	}
	a.statusMsg = "Redo: " + doc.DisplayName()
	a.updatePreview()
}

func (a *App) moveSelected(dst *workspace.Folder) {
	r, ok := a.selectedRow()
	if !ok || r.parent == nil {
		a.statusMsg = "Top-level folders cannot be moved"
		return
	}
	if dst == a.ws.Trash && r.parent == a.ws.Trash {
		a.statusMsg = r.item.DisplayName() + " is already in the Trash"
		return
	}
	var err error
	if dst == a.ws.Trash {
		err = a.ws.MoveToTrash(r.item, r.parent)
	} else {
		err = a.ws.MoveToResearch(r.item, r.parent)
	}
	if err != nil {
		a.statusMsg = err.Error()
		return
	}
	a.log.Debug().Str("item", r.item.DisplayName()).Str("to", dst.Name).Msg("moved")
	a.refreshRows()
	a.clampCursor()
	a.updatePreview()
	a.statusMsg = fmt.Sprintf("Moved %s to %s", r.item.DisplayName(), dst.Name)
}

func (a *App) confirmEmptyTrash() {
	if len(a.ws.Trash.Items) == 0 {
		a.statusMsg = "The Trash is already empty"
		return
	}
	empty := func() tea.Cmd {
		n := a.ws.EmptyTrash()
		a.refreshRows()
		a.clampCursor()
		a.updatePreview()
		a.statusMsg = fmt.Sprintf("Deleted %d item(s) from the Trash", n)
		return nil
	}
	if !a.settings.Project.ConfirmEmptyTrash {
		empty()
		return
	}
	a.confirm.Show(ConfirmationConfig{
		Title:       "Empty Trash",
		Message:     fmt.Sprintf("Permanently delete %d item(s) from the Trash?", len(a.ws.Trash.Items)),
		Warning:     "This cannot be undone.",
		Destructive: true,
		Dialog:      true,
	}, empty, nil)
}

func (a *App) search(query string) {
	a.matches = a.matches[:0]
	for _, r := range a.ws.Search(query) {
		a.matches = append(a.matches, r.Document)
	}
	a.matchIdx = -1
	if len(a.matches) == 0 {
		a.statusMsg = fmt.Sprintf("No documents contain '%s'", query)
		return
	}
	a.nextMatch(1)
}

func (a *App) nextMatch(step int) {
	if len(a.matches) == 0 {
		return
	}
	a.matchIdx = (a.matchIdx + step + len(a.matches)) % len(a.matches)
	doc := a.matches[a.matchIdx]
	expandTo(a.ws, a.collapsed, doc)
	a.refreshRows()
	a.selectItem(doc)
	a.updatePreview()
	a.statusMsg = fmt.Sprintf("Match %d of %d ([ and ] to move)", a.matchIdx+1, len(a.matches))
}

func (a *App) finishEdit(msg editorFinishedMsg) tea.Cmd {
	if msg.err != nil {
		_ = removeQuietly(msg.path)
		a.statusMsg = fmt.Sprintf("Editor failed: %v", msg.err)
		return nil
	}
	body, err := readEdited(msg.path)
	if err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	if !msg.doc.Commit(body) {
		a.statusMsg = "No changes"
		return nil
	}
	a.updatePreview()
	a.statusMsg = "Edited " + msg.doc.DisplayName()
	return nil
}

// saveCmd snapshots the workspace now and writes it in the background.
// Auto-saves skip unchanged workspaces.
func (a *App) saveCmd(auto bool) tea.Cmd {
	data, changed, err := a.saver.Snapshot(a.ws)
	if err != nil {
		return func() tea.Msg { return savedMsg{auto: auto, err: err} }
	}
	if auto && !changed {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{auto: auto, err: a.saver.Write(data)}
	}
}

// quit asks before leaving with unsaved changes.
func (a *App) quit() tea.Cmd {
	data, changed, err := a.saver.Snapshot(a.ws)
	if err != nil || !changed {
		return tea.Quit
	}
	a.confirm.ShowInline("Save changes before quitting?", false,
		func() tea.Cmd {
			if err := a.saver.Write(data); err != nil {
				a.statusMsg = fmt.Sprintf("Save failed: %v", err)
				return nil
			}
			return tea.Quit
		},
		func() tea.Cmd { return tea.Quit })
	return nil
}

// Dirty reports whether the workspace differs from the file on disk
func (a *App) Dirty() bool {
	_, changed, err := a.saver.Snapshot(a.ws)
	return err == nil && changed
}

func (a *App) afterChange(item workspace.Item) {
	expandTo(a.ws, a.collapsed, item)
	a.refreshRows()
	a.selectItem(item)
	a.updatePreview()
}

func (a *App) refreshRows() {
	a.rows = flattenTree(a.ws, a.collapsed)
	a.clampCursor()
}

func (a *App) clampCursor() {
	a.cursor = max(0, min(a.cursor, len(a.rows)-1))
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
	a.updatePreview()
}

func (a *App) selectItem(item workspace.Item) {
	if i := indexOfItem(a.rows, item); i >= 0 {
		a.cursor = i
	}
}

func (a *App) collapseSelected() {
	r, ok := a.selectedRow()
	if !ok {
		return
	}
	if f, isFolder := r.folder(); isFolder && !a.collapsed[f.ID] {
		a.collapsed[f.ID] = true
		a.refreshRows()
		return
	}
	if r.parent != nil {
		a.selectItem(r.parent)
		a.updatePreview()
	}
}

func (a *App) expandSelected() {
	r, ok := a.selectedRow()
	if !ok {
		return
	}
	if f, isFolder := r.folder(); isFolder && a.collapsed[f.ID] {
		delete(a.collapsed, f.ID)
		a.refreshRows()
	}
}

func (a *App) selectedRow() (treeRow, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return treeRow{}, false
	}
	return a.rows[a.cursor], true
}

func (a *App) selectedItem() workspace.Item {
	r, ok := a.selectedRow()
	if !ok {
		return nil
	}
	return r.item
}

// targetDocument is the selected document, else the current one.
func (a *App) targetDocument() *workspace.Document {
	if r, ok := a.selectedRow(); ok {
		if d, ok := r.document(); ok {
			return d
		}
	}
	return a.ws.Current
}

// targetFolder is the selected folder, or the folder holding the selected
// document. New items cannot be created in the Trash.
func (a *App) targetFolder() *workspace.Folder {
	r, ok := a.selectedRow()
	if !ok {
		return a.ws.Root
	}
	f, isFolder := r.folder()
	if !isFolder {
		f = r.parent
	}
	if f == a.ws.Trash || a.ws.Trash.Contains(f) {
		a.statusMsg = "Nothing can be created in the Trash"
		return nil
	}
	return f
}

func (a *App) updatePreview() {
	r, ok := a.selectedRow()
	if !ok {
		a.preview.SetContent("")
		return
	}
	if f, isFolder := r.folder(); isFolder {
		a.preview.SetContent(renderFolderSummary(a.ws, f))
	} else if d, isDoc := r.document(); isDoc {
		a.preview.SetContent(renderContent(d.Content, a.wrapWidth()))
	}
	a.preview.GotoTop()
}

func (a *App) wrapWidth() int {
	w := a.preview.Width
	if ww := a.settings.UI.WrapWidth; ww > 0 && ww < w {
		w = ww
	}
	return max(w, 1)
}

func (a *App) treeWidth() int {
	if !a.settings.UI.ShowPreview {
		return max(a.width-4, 10)
	}
	return max(a.width/3, 20)
}

func (a *App) bodyHeight() int {
	// title, status bar, prompt line and pane borders
	return max(a.height-6, 3)
}

func (a *App) layout() {
	a.preview.Width = max(a.width-a.treeWidth()-8, 10)
	a.preview.Height = a.bodyHeight()
	a.prompt.SetWidth(a.width)
	a.updatePreview()
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	title := TitleStyle.Render("LangoTango") + "  " + DescriptionStyle.Render(a.path)

	panes := a.renderTree()
	if a.settings.UI.ShowPreview {
		previewStyle := InactiveBorderStyle
		if a.focus == previewPane {
			previewStyle = ActiveBorderStyle
		}
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes,
			previewStyle.Width(a.preview.Width+2).Render(a.preview.View()))
	}

	bottom := a.statusLine()
	switch {
	case a.confirm.Active():
		overlay := a.confirm.View(a.width)
		if a.confirm.config.Dialog {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		bottom = overlay
	case a.prompt.Active():
		bottom = a.prompt.View()
	case a.showHelp:
		bottom = DescriptionStyle.Render(helpText)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, panes, a.statusBar(), bottom)
}

func (a *App) renderTree() string {
	height := a.bodyHeight()
	width := a.treeWidth()

	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+height {
		a.offset = a.cursor - height + 1
	}

	var lines []string
	for i := a.offset; i < len(a.rows) && i < a.offset+height; i++ {
		lines = append(lines, renderRow(a.ws, a.rows[i], a.collapsed, i == a.cursor, width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	style := InactiveBorderStyle
	if a.focus == treePane {
		style = ActiveBorderStyle
	}
	return style.Width(width + 2).Render(strings.Join(lines, "\n"))
}

// statusBar shows the word counts.
func (a *App) statusBar() string {
	current := 0
	if a.ws.Current != nil {
		current = a.ws.Current.WordCount()
	}
	text := fmt.Sprintf("Current Document: %s words | Total Project: %s words",
		utils.FormatCount(current), utils.FormatCount(a.ws.WordCount()))
	if a.Dirty() {
		text += " | modified"
	}
	return StatusBarStyle.Width(a.width).Render(text)
}

func (a *App) statusLine() string {
	if a.statusMsg == "" {
		return DescriptionStyle.Render("? help")
	}
	if strings.HasPrefix(a.statusMsg, "Save failed") || strings.HasPrefix(a.statusMsg, "Editor failed") {
		return ErrorStyle.Render(a.statusMsg)
	}
	return StatusMessageStyle.Render(a.statusMsg)
}

const helpText = "↑/↓ move  enter open/fold  e edit  u undo  U redo  n new doc  N new folder  R rename  " +
	"t trash  r research  E empty trash  / search  s save  tab preview  q quit"
