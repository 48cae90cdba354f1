package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/utils"
	"github.com/shokunin/langotango/pkg/workspace"
)

// renderContent draws formatted content for the terminal, one paragraph per
// block, wrapped to width and aligned as the block asks.
func renderContent(c content.Content, width int) string {
	if c.IsEmpty() {
		return DescriptionStyle.Render("(empty document)")
	}
	if width < 1 {
		width = 1
	}

	lines := make([]string, 0, len(c))
	for _, block := range c {
		var b strings.Builder
		for _, span := range block.Spans {
			b.WriteString(spanStyle(span).Render(span.Text))
		}
		wrapped := wordwrap.String(b.String(), width)

		align := lipgloss.Left
		switch content.NormalizeAlignment(int(block.Alignment)) {
		case content.AlignCenter:
			align = lipgloss.Center
		case content.AlignRight:
			align = lipgloss.Right
		}
		if align != lipgloss.Left {
			wrapped = lipgloss.NewStyle().Width(width).Align(align).Render(wrapped)
		}
		lines = append(lines, wrapped)
	}
	return strings.Join(lines, "\n")
}

func spanStyle(s content.Span) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Highlight {
		style = HighlightStyle
	}
	if c, ok := s.Color.Value(); ok && !s.Highlight {
		style = style.Foreground(lipgloss.Color(c))
	}
	return style.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
}

// renderFolderSummary is shown in the preview pane when a folder is selected.
func renderFolderSummary(ws *workspace.Workspace, f *workspace.Folder) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(f.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s documents\n", utils.FormatCount(f.DocumentCount()))
	fmt.Fprintf(&b, "%s words\n", utils.FormatCount(f.WordCount()))
	b.WriteString(DescriptionStyle.Render("Modified " + f.Modified.String()))
	switch {
	case f == ws.Trash:
		b.WriteString("\n\n")
		b.WriteString(DescriptionStyle.Render("Press E to empty the Trash."))
	case f == ws.Research:
		b.WriteString("\n\n")
		b.WriteString(DescriptionStyle.Render("Research is left out of compiled manuscripts."))
	}
	return b.String()
}

// truncate shortens s to width cells, adding an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}
