// Package content holds the rich-text document model: an ordered list of
// paragraph blocks, each with an alignment and a list of formatted spans.
//
// Content is a plain value. It carries no cursor or selection state and can
// be compared, copied and serialized without reference to any editor.
package content

import "unicode/utf8"

const (
	// DefaultFontFamily is used for spans that do not name a font.
	DefaultFontFamily = "Courier New"

	// DefaultFontSize is used for spans without a positive point size.
	DefaultFontSize = 12
)

// Alignment is the horizontal alignment of a block. The values match the
// flags written by earlier versions of the application so that old project
// files keep their layout.
type Alignment int

const (
	AlignLeft    Alignment = 1
	AlignRight   Alignment = 2
	AlignCenter  Alignment = 4
	AlignJustify Alignment = 8
)

// horizontalMask selects the horizontal bits of a persisted alignment flag.
const horizontalMask = 0x0f

// NormalizeAlignment maps a persisted alignment value to a known Alignment.
// Unknown or empty values become AlignLeft.
func NormalizeAlignment(v int) Alignment {
	switch Alignment(v & horizontalMask) {
	case AlignRight:
		return AlignRight
	case AlignCenter:
		return AlignCenter
	case AlignJustify:
		return AlignJustify
	default:
		return AlignLeft
	}
}

// String returns the lowercase name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment converts a name such as "center" into an Alignment.
func ParseAlignment(name string) (Alignment, bool) {
	switch name {
	case "left", "":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center", "centre":
		return AlignCenter, true
	case "justify":
		return AlignJustify, true
	}
	return AlignLeft, false
}

// Color is an optional text color. The zero value means no override.
type Color struct {
	value string
	set   bool
}

// NewColor returns a color set to v. An empty v yields an unset color.
func NewColor(v string) Color {
	if v == "" {
		return Color{}
	}
	return Color{value: v, set: true}
}

// NoColor is the unset color.
var NoColor = Color{}

// Value returns the color string and whether it is set.
func (c Color) Value() (string, bool) {
	return c.value, c.set
}

// IsSet reports whether the color overrides the default.
func (c Color) IsSet() bool {
	return c.set
}

// String returns the color value or an empty string when unset.
func (c Color) String() string {
	return c.value
}

// Span is a run of text that shares one set of formatting.
type Span struct {
	Text       string
	FontFamily string
	FontSize   int
	Bold       bool
	Italic     bool
	Underline  bool
	Highlight  bool
	Color      Color
}

// NewSpan returns a span with the default font and no styling.
func NewSpan(text string) Span {
	return Span{
		Text:       text,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
	}
}

// Equal compares every field of two spans.
func (s Span) Equal(o Span) bool {
	return s == o
}

// SameFormat reports whether two spans differ only in their text.
func (s Span) SameFormat(o Span) bool {
	s.Text, o.Text = "", ""
	return s == o
}

// withText returns a copy of s holding text.
func (s Span) withText(text string) Span {
	s.Text = text
	return s
}

// Block is one paragraph.
type Block struct {
	Alignment Alignment
	Spans     []Span
}

// Text returns the concatenated text of the block's spans.
func (b Block) Text() string {
	if len(b.Spans) == 1 {
		return b.Spans[0].Text
	}
	n := 0
	for _, s := range b.Spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range b.Spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Equal compares alignment and spans element-wise.
func (b Block) Equal(o Block) bool {
	if NormalizeAlignment(int(b.Alignment)) != NormalizeAlignment(int(o.Alignment)) || len(b.Spans) != len(o.Spans) {
		return false
	}
	for i := range b.Spans {
		if !b.Spans[i].Equal(o.Spans[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := Block{Alignment: b.Alignment}
	if b.Spans != nil {
		out.Spans = make([]Span, len(b.Spans))
		copy(out.Spans, b.Spans)
	}
	return out
}

// Content is a document body in top-to-bottom block order.
type Content []Block

// Equal reports whether two contents hold the same blocks. A nil and an
// empty Content are equal.
func (c Content) Equal(o Content) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if !c[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy that shares no slices with c.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	out := make(Content, len(c))
	for i, b := range c {
		out[i] = b.Clone()
	}
	return out
}

// IsEmpty reports whether the content has no text at all.
func (c Content) IsEmpty() bool {
	for _, b := range c {
		for _, s := range b.Spans {
			if s.Text != "" {
				return false
			}
		}
	}
	return true
}

// Len returns the number of runes in the plain-text rendering.
func (c Content) Len() int {
	return utf8.RuneCountInString(c.PlainText())
}
