package content

import "unicode"

// ReplaceAll replaces every non-overlapping occurrence of find in each
// block. A replacement takes the formatting of the span holding the first
// character of the match, so matches that straddle span boundaries keep the
// leading span's style. Matches never cross block boundaries.
//
// It returns a new Content and the number of replacements made; c is not
// modified.
func (c Content) ReplaceAll(find, replace string, caseSensitive bool) (Content, int) {
	out := c.Clone()
	if find == "" {
		return out, 0
	}
	pattern := foldRunes([]rune(find), caseSensitive)

	total := 0
	for i := range out {
		block, n := replaceInBlock(out[i], pattern, []rune(replace), caseSensitive)
		if n > 0 {
			out[i] = block
			total += n
		}
	}
	return out, total
}

func replaceInBlock(b Block, pattern, replacement []rune, caseSensitive bool) (Block, int) {
	// Flatten the block into runes, remembering which span owns each rune.
	var text []rune
	var owner []int
	for si, s := range b.Spans {
		for _, r := range s.Text {
			text = append(text, r)
			owner = append(owner, si)
		}
	}
	if len(text) < len(pattern) {
		return b, 0
	}
	folded := foldRunes(text, caseSensitive)

	pieces := make([][]rune, len(b.Spans))
	count := 0
	for i := 0; i < len(text); {
		if i+len(pattern) <= len(text) && runesEqual(folded[i:i+len(pattern)], pattern) {
			pieces[owner[i]] = append(pieces[owner[i]], replacement...)
			i += len(pattern)
			count++
			continue
		}
		pieces[owner[i]] = append(pieces[owner[i]], text[i])
		i++
	}
	if count == 0 {
		return b, 0
	}

	out := Block{Alignment: b.Alignment}
	for si, s := range b.Spans {
		// Spans emptied by a replacement are dropped; originally empty ones stay.
		if len(pieces[si]) == 0 && s.Text != "" {
			continue
		}
		out.Spans = append(out.Spans, s.withText(string(pieces[si])))
	}
	return out, count
}

func foldRunes(rs []rune, caseSensitive bool) []rune {
	if caseSensitive {
		return rs
	}
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
