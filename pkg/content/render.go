package content

import (
	"fmt"
	"html"
	"strings"
)

// Format selects how content is rendered to a string.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the format names used on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format: %s (must be: text, markdown, or html)", name)
}

// HighlightColor is the background used for highlighted spans.
const HighlightColor = "#afb441"

// Render renders the content in the given format.
func (c Content) Render(f Format) string {
	switch f {
	case FormatMarkdown:
		return c.Markdown()
	case FormatHTML:
		return c.HTML()
	default:
		return c.PlainText()
	}
}

// PlainText joins block texts with newlines.
func (c Content) PlainText() string {
	var b strings.Builder
	for i, block := range c {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(block.Text())
	}
	return b.String()
}

// WordCount counts whitespace-separated words across all blocks.
func (c Content) WordCount() int {
	return len(strings.Fields(c.PlainText()))
}

// Markdown renders blocks as paragraphs separated by blank lines, with
// inline emphasis for bold, italic, underline and highlight.
func (c Content) Markdown() string {
	paragraphs := make([]string, 0, len(c))
	for _, block := range c {
		var b strings.Builder
		for _, s := range block.Spans {
			b.WriteString(markdownSpan(s))
		}
		paragraphs = append(paragraphs, b.String())
	}
	return strings.Join(paragraphs, "\n\n")
}

func markdownSpan(s Span) string {
	if s.Text == "" {
		return ""
	}
	// Emphasis markers cannot wrap surrounding whitespace, so keep it outside.
	core := strings.TrimSpace(s.Text)
	if core == "" {
		return s.Text
	}
	lead := s.Text[:strings.Index(s.Text, core)]
	trail := s.Text[len(lead)+len(core):]

	text := core
	if s.Bold && s.Italic {
		text = "***" + text + "***"
	} else if s.Bold {
		text = "**" + text + "**"
	} else if s.Italic {
		text = "*" + text + "*"
	}
	if s.Underline {
		text = "<u>" + text + "</u>"
	}
	if s.Highlight {
		text = "<mark>" + text + "</mark>"
	}
	return lead + text + trail
}

// HTML renders one paragraph element per block and one styled span per span.
func (c Content) HTML() string {
	var b strings.Builder
	for _, block := range c {
		fmt.Fprintf(&b, `<p style="text-align: %s;">`, block.Alignment.String())
		for _, s := range block.Spans {
			b.WriteString(htmlSpan(s))
		}
		b.WriteString("</p>\n")
	}
	return b.String()
}

func htmlSpan(s Span) string {
	styles := []string{
		fmt.Sprintf("font-family: '%s'", s.FontFamily),
		fmt.Sprintf("font-size: %dpt", s.FontSize),
	}
	if s.Bold {
		styles = append(styles, "font-weight: bold")
	}
	if s.Italic {
		styles = append(styles, "font-style: italic")
	}
	if s.Underline {
		styles = append(styles, "text-decoration: underline")
	}
	if s.Highlight {
		styles = append(styles, "background-color: "+HighlightColor)
	}
	if v, ok := s.Color.Value(); ok {
		styles = append(styles, "color: "+v)
	}
	text := strings.ReplaceAll(html.EscapeString(s.Text), "\n", "<br/>")
	return fmt.Sprintf(`<span style="%s;">%s</span>`, strings.Join(styles, "; "), text)
}
