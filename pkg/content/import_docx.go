package content

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// FromDOCX converts a Word document into content. Each paragraph becomes a
// block; run properties map to span formatting. Tables and drawings are
// skipped.
func FromDOCX(r io.ReaderAt, size int64) (Content, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	c := Content{}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		c = append(c, docxBlock(para))
	}
	return c, nil
}

func docxBlock(para *docx.Paragraph) Block {
	b := &builder{}
	align := AlignLeft
	if para.Properties != nil && para.Properties.Justification != nil {
		align = docxAlignment(para.Properties.Justification.Val)
	}
	b.startBlock(align)

	for _, child := range para.Children {
		switch v := child.(type) {
		case *docx.Run:
			docxRun(b, v)
		case *docx.Hyperlink:
			docxRun(b, &v.Run)
		}
	}
	if b.current == nil {
		return Block{Alignment: align}
	}
	return *b.current
}

func docxRun(b *builder, run *docx.Run) {
	style := docxStyle(run.RunProperties)
	for _, rc := range run.Children {
		switch t := rc.(type) {
		case *docx.Text:
			b.write(t.Text, style)
		case *docx.Tab:
			b.write("\t", style)
		}
	}
}

func docxStyle(props *docx.RunProperties) Span {
	s := NewSpan("")
	if props == nil {
		return s
	}
	s.Bold = props.Bold != nil
	s.Italic = props.Italic != nil
	if props.Underline != nil {
		s.Underline = props.Underline.Val != "none"
	}
	if props.Highlight != nil {
		s.Highlight = props.Highlight.Val != "" && props.Highlight.Val != "none"
	}
	if props.Color != nil && props.Color.Val != "" && !strings.EqualFold(props.Color.Val, "auto") {
		s.Color = NewColor("#" + strings.ToLower(props.Color.Val))
	}
	if props.Size != nil {
		// w:sz is measured in half-points.
		if half, err := strconv.Atoi(props.Size.Val); err == nil && half > 0 {
			s.FontSize = (half + 1) / 2
		}
	}
	if props.Fonts != nil {
		switch {
		case props.Fonts.ASCII != "":
			s.FontFamily = props.Fonts.ASCII
		case props.Fonts.HAnsi != "":
			s.FontFamily = props.Fonts.HAnsi
		case props.Fonts.EastAsia != "":
			s.FontFamily = props.Fonts.EastAsia
		}
	}
	return s
}

func docxAlignment(val string) Alignment {
	switch strings.ToLower(val) {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "distribute":
		return AlignJustify
	default:
		return AlignLeft
	}
}
