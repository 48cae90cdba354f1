package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// EstimateTokens provides a lightweight estimation of token count for the
// excerpt sent to a tutor.
// - 1 token ~= 4 characters of alphabetic text
// - 1 token ~= ¾ words
// - ideographic and kana characters are close to one token each
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	wide := 0
	narrow := 0
	for _, r := range text {
		switch {
		case isWideScript(r):
			wide++
		case !unicode.IsSpace(r):
			narrow++
		}
	}

	// Average the character and word based estimates for alphabetic text.
	baseEstimate := narrow / 4
	wordEstimate := int(float64(CountWords(text)) * 1.3)
	estimate := (baseEstimate+wordEstimate)/2 + wide

	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

func isWideScript(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// CountWords counts whitespace-separated words, the way the status bar does.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters counts non-space characters.
func CountCharacters(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// FormatCount renders n with thousands separators, e.g. 12,345.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatTokenCount formats the token count for display
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	} else if tokens < 10000 {
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	} else {
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}

// TailRunes returns the last n characters of text, or all of it when
// shorter.
func TailRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
