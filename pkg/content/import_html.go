package content

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts an HTML fragment or document into content. Block-level
// elements start new blocks; inline elements and style attributes map to
// span formatting. Script, style and head content is skipped.
func FromHTML(r io.Reader) (Content, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &builder{}
	base := NewSpan("")

	var walk func(n *html.Node, style Span)
	walk = func(n *html.Node, style Span) {
		switch n.Type {
		case html.TextNode:
			text := collapseSpace(n.Data)
			if b.current == nil {
				text = strings.TrimLeft(text, " ")
			}
			if text != "" && (b.current != nil || strings.TrimSpace(text) != "") {
				b.write(text, style)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head", "title":
				return
			case "br":
				b.endBlock()
				return
			}
		}

		style = applyElementStyle(n, style)
		block := n.Type == html.ElementNode && isBlockElement(n.Data)
		if block {
			b.endBlock()
			if align, ok := attrAlignment(n); ok {
				b.setAlignment(align)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, style)
		}
		if block {
			b.endBlock()
		}
	}

	walk(doc, base)
	return trimBlockEdges(b.content()), nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "blockquote", "pre", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "section", "article":
		return true
	}
	return false
}

func applyElementStyle(n *html.Node, style Span) Span {
	if n.Type != html.ElementNode {
		return style
	}
	switch n.Data {
	case "b", "strong", "h1", "h2", "h3", "h4", "h5", "h6":
		style.Bold = true
	case "i", "em", "cite":
		style.Italic = true
	case "u", "ins":
		style.Underline = true
	case "mark":
		style.Highlight = true
	case "font":
		if face := attr(n, "face"); face != "" {
			style.FontFamily = face
		}
		if color := attr(n, "color"); color != "" {
			style.Color = NewColor(color)
		}
	}
	for prop, raw := range parseStyleAttr(attr(n, "style")) {
		value := strings.ToLower(raw)
		switch prop {
		case "font-weight":
			if value == "bold" || value == "bolder" {
				style.Bold = true
			} else if w, err := strconv.Atoi(value); err == nil {
				style.Bold = w >= 600
			} else if value == "normal" {
				style.Bold = false
			}
		case "font-style":
			style.Italic = value == "italic" || value == "oblique"
		case "text-decoration", "text-decoration-line":
			if strings.Contains(value, "underline") {
				style.Underline = true
			}
		case "color":
			style.Color = NewColor(raw)
		case "background-color", "background":
			if strings.EqualFold(value, HighlightColor) {
				style.Highlight = true
			}
		case "font-family":
			family := strings.Trim(strings.Split(raw, ",")[0], `'" `)
			if family != "" {
				style.FontFamily = family
			}
		case "font-size":
			if size := parsePointSize(value); size > 0 {
				style.FontSize = size
			}
		}
	}
	return style
}

func attrAlignment(n *html.Node) (Alignment, bool) {
	if v := attr(n, "align"); v != "" {
		return ParseAlignment(strings.ToLower(v))
	}
	if v, ok := parseStyleAttr(attr(n, "style"))["text-align"]; ok {
		return ParseAlignment(strings.ToLower(v))
	}
	return AlignLeft, false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parseStyleAttr(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	return props
}

// parsePointSize reads sizes like "14pt" or "16px" as whole points.
func parsePointSize(v string) int {
	switch {
	case strings.HasSuffix(v, "pt"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "pt"), 64)
		if err == nil {
			return int(f + 0.5)
		}
	case strings.HasSuffix(v, "px"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err == nil {
			return int(f*0.75 + 0.5)
		}
	}
	return 0
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f'
}

// trimBlockEdges removes whitespace left at the start and end of each block
// by collapsed markup indentation.
func trimBlockEdges(c Content) Content {
	for i := range c {
		spans := c[i].Spans
		if len(spans) == 0 {
			continue
		}
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
		kept := spans[:0]
		for _, s := range spans {
			if s.Text != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		c[i].Spans = kept
	}
	out := c[:0]
	for _, b := range c {
		if len(b.Spans) > 0 {
			out = append(out, b)
		}
	}
	return out
}
