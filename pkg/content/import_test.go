package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSpan(c Content, text string) (Span, bool) {
	for _, b := range c {
		for _, s := range b.Spans {
			if s.Text == text {
				return s, true
			}
		}
	}
	return Span{}, false
}

func TestFromPlainText(t *testing.T) {
	c := FromPlainText("one\r\n\r\nthree")
	require.Len(t, c, 3)
	assert.Equal(t, "one", c[0].Text())
	assert.Empty(t, c[1].Spans)
	assert.Equal(t, "three", c[2].Text())
	assert.Equal(t, AlignLeft, c[2].Alignment)

	assert.Empty(t, FromPlainText(""))
}

func TestFromHTML(t *testing.T) {
	src := `<html><head><title>skip</title><style>p{}</style></head><body>
<p align="center"><b>Bold</b> text</p>
<p style="text-align: right">Second<br>line</p>
<p><span style="font-family: 'Noto Sans', sans-serif; font-size: 16pt; color: #AA0000">Styled</span>
<mark>marked</mark> <i>it</i> <u>under</u></p>
<script>var x = 1;</script>
</body></html>`

	c, err := FromHTML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, c, 4)

	assert.Equal(t, AlignCenter, c[0].Alignment)
	assert.Equal(t, "Bold text", c[0].Text())
	bold, ok := findSpan(c, "Bold")
	require.True(t, ok)
	assert.True(t, bold.Bold)

	assert.Equal(t, AlignRight, c[1].Alignment)
	assert.Equal(t, "Second", c[1].Text())
	assert.Equal(t, "line", c[2].Text())

	assert.Equal(t, "Styled marked it under", c[3].Text())
	styledSpan, ok := findSpan(c, "Styled")
	require.True(t, ok)
	assert.Equal(t, "Noto Sans", styledSpan.FontFamily)
	assert.Equal(t, 16, styledSpan.FontSize)
	assert.Equal(t, "#AA0000", styledSpan.Color.String())

	marked, ok := findSpan(c, "marked")
	require.True(t, ok)
	assert.True(t, marked.Highlight)
	it, ok := findSpan(c, "it")
	require.True(t, ok)
	assert.True(t, it.Italic)
	under, ok := findSpan(c, "under")
	require.True(t, ok)
	assert.True(t, under.Underline)

	assert.NotContains(t, c.PlainText(), "skip")
	assert.NotContains(t, c.PlainText(), "var x")
}

func TestFromHTMLRendersBack(t *testing.T) {
	original := Content{{Alignment: AlignJustify, Spans: []Span{
		styled("Hola", func(s *Span) { s.Bold = true; s.Highlight = true }),
		NewSpan(" mundo"),
	}}}

	c, err := FromHTML(strings.NewReader(original.HTML()))
	require.NoError(t, err)
	assert.True(t, c.Equal(original), "got %+v", c)
}

func TestFromMarkdown(t *testing.T) {
	src := "# Title\n\nSome *it* and **bold**.\n\n```\ncode line\n```\n"

	c, err := FromMarkdown([]byte(src))
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.Equal(t, "Title", c[0].Text())
	title := c[0].Spans[0]
	assert.True(t, title.Bold)
	assert.Equal(t, 18, title.FontSize)

	assert.Equal(t, "Some it and bold.", c[1].Text())
	it, ok := findSpan(c, "it")
	require.True(t, ok)
	assert.True(t, it.Italic)
	assert.False(t, it.Bold)
	bold, ok := findSpan(c, "bold")
	require.True(t, ok)
	assert.True(t, bold.Bold)

	assert.Equal(t, "code line", c[2].Text())
}

func TestFromMarkdownSoftBreak(t *testing.T) {
	c, err := FromMarkdown([]byte("first line\nsecond line\n"))
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "first line second line", c[0].Text())
}
