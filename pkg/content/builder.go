package content

import "strings"

// builder accumulates blocks while an importer walks a foreign document.
// Adjacent text with identical formatting is merged into one span.
type builder struct {
	blocks  Content
	current *Block
}

func (b *builder) startBlock(align Alignment) {
	b.blocks = append(b.blocks, Block{Alignment: align})
	b.current = &b.blocks[len(b.blocks)-1]
}

// ensureBlock opens a left-aligned block if none is open.
func (b *builder) ensureBlock() {
	if b.current == nil {
		b.startBlock(AlignLeft)
	}
}

// endBlock closes the open block; the next text opens a new one.
func (b *builder) endBlock() {
	b.current = nil
}

func (b *builder) setAlignment(align Alignment) {
	b.ensureBlock()
	b.current.Alignment = align
}

func (b *builder) write(text string, style Span) {
	if text == "" {
		return
	}
	b.ensureBlock()
	spans := b.current.Spans
	if n := len(spans); n > 0 && spans[n-1].SameFormat(style) {
		spans[n-1].Text += text
		return
	}
	b.current.Spans = append(spans, style.withText(text))
}

// content returns the collected blocks, dropping empty trailing blocks.
func (b *builder) content() Content {
	out := b.blocks
	for len(out) > 0 && len(out[len(out)-1].Spans) == 0 {
		out = out[:len(out)-1]
	}
	if out == nil {
		return Content{}
	}
	return out
}

// FromPlainText converts text into one default-formatted block per line.
// Windows and old Mac line endings are normalized first.
func FromPlainText(text string) Content {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return Content{}
	}
	lines := strings.Split(text, "\n")
	c := make(Content, 0, len(lines))
	for _, line := range lines {
		b := Block{Alignment: AlignLeft}
		if line != "" {
			b.Spans = []Span{NewSpan(line)}
		}
		c = append(c, b)
	}
	return c
}
