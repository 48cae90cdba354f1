package tui

import (
	"strings"

	"github.com/shokunin/langotango/pkg/workspace"
)

// treeRow is one visible line of the project tree.
type treeRow struct {
	item   workspace.Item
	parent *workspace.Folder
	depth  int
}

func (r treeRow) folder() (*workspace.Folder, bool) {
	f, ok := r.item.(*workspace.Folder)
	return f, ok
}

func (r treeRow) document() (*workspace.Document, bool) {
	d, ok := r.item.(*workspace.Document)
	return d, ok
}

// flattenTree lists the visible rows in walk order. Folders whose id is in
// collapsed are shown without their contents.
func flattenTree(ws *workspace.Workspace, collapsed map[string]bool) []treeRow {
	var rows []treeRow
	_ = ws.Walk(func(item workspace.Item, parent *workspace.Folder, depth int) error {
		rows = append(rows, treeRow{item: item, parent: parent, depth: depth})
		if f, ok := item.(*workspace.Folder); ok && collapsed[f.ID] {
			return workspace.SkipFolder
		}
		return nil
	})
	return rows
}

// indexOfItem returns the row holding item, or -1.
func indexOfItem(rows []treeRow, item workspace.Item) int {
	for i, r := range rows {
		if r.item == item {
			return i
		}
	}
	return -1
}

// expandTo uncollapses every folder above item so that it becomes visible.
func expandTo(ws *workspace.Workspace, collapsed map[string]bool, item workspace.Item) {
	for {
		parent, ok := ws.ParentOf(item)
		if !ok {
			return
		}
		delete(collapsed, parent.ID)
		item = parent
	}
}

// renderRow draws one tree line: indentation, a marker and the name.
func renderRow(ws *workspace.Workspace, r treeRow, collapsed map[string]bool, selected bool, width int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.depth))

	var name string
	style := NormalStyle
	if f, ok := r.folder(); ok {
		if collapsed[f.ID] {
			b.WriteString("▸ ")
		} else {
			b.WriteString("▾ ")
		}
		name = f.Name
		style = FolderStyle
		if ws.IsSpecial(f) {
			style = SpecialFolderStyle
		}
	} else if d, ok := r.document(); ok {
		if d == ws.Current {
			b.WriteString("* ")
			style = CurrentDocumentStyle
		} else {
			b.WriteString("  ")
		}
		name = d.DisplayName()
	}
	b.WriteString(name)

	line := truncate(b.String(), width)
	if selected {
		return SelectedStyle.Width(width).Render(line)
	}
	return style.Render(line)
}
