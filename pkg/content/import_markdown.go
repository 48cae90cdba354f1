package content

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// headingSizes maps markdown heading levels to point sizes.
var headingSizes = map[int]int{1: 18, 2: 16, 3: 14, 4: 13, 5: 12, 6: 12}

// FromMarkdown converts markdown source into content using goldmark's AST.
// Paragraphs, headings and list items become blocks; single emphasis is
// italic, double emphasis is bold; headings are bold at larger sizes.
func FromMarkdown(src []byte) (Content, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := &builder{}
	styles := []Span{NewSpan("")}
	top := func() Span { return styles[len(styles)-1] }
	push := func(s Span) { styles = append(styles, s) }
	pop := func() { styles = styles[:len(styles)-1] }

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if entering {
				b.endBlock()
				b.ensureBlock()
			} else {
				b.endBlock()
			}
		case *ast.Heading:
			if entering {
				b.endBlock()
				b.ensureBlock()
				s := top()
				s.Bold = true
				if size, ok := headingSizes[node.Level]; ok {
					s.FontSize = size
				}
				push(s)
			} else {
				pop()
				b.endBlock()
			}
		case *ast.Emphasis:
			if entering {
				s := top()
				if node.Level >= 2 {
					s.Bold = true
				} else {
					s.Italic = true
				}
				push(s)
			} else {
				pop()
			}
		case *ast.Text:
			if entering {
				b.write(string(node.Segment.Value(src)), top())
				if node.HardLineBreak() {
					b.endBlock()
				} else if node.SoftLineBreak() {
					b.write(" ", top())
				}
			}
		case *ast.String:
			if entering {
				b.write(string(node.Value), top())
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					line := string(seg.Value(src))
					b.endBlock()
					b.write(trimNewline(line), top())
				}
				b.endBlock()
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return b.content(), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
