package workspace

import (
	"strings"
	"unicode"
)

// ExcerptContext is the number of characters kept on each side of a match.
const ExcerptContext = 40

// SearchResult is a document whose text contains the query.
type SearchResult struct {
	Document *Document
	Parent   *Folder
	Path     string
	Excerpt  string
}

// Search looks for query in the plain text of every document, Research and
// Trash included, ignoring case. Only the first match in each document is
// reported. Results follow walk order.
func (w *Workspace) Search(query string) []SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var results []SearchResult
	var names []string
	_ = w.Walk(func(item Item, parent *Folder, depth int) error {
		names = append(names[:depth], item.DisplayName())
		doc, ok := item.(*Document)
		if !ok {
			return nil
		}
		excerpt, ok := Excerpt(doc.PlainText(), query)
		if ok {
			results = append(results, SearchResult{
				Document: doc,
				Parent:   parent,
				Path:     strings.Join(names, "/"),
				Excerpt:  excerpt,
			})
		}
		return nil
	})
	return results
}

// Excerpt finds the first case-insensitive occurrence of query in text and
// returns up to ExcerptContext characters on either side of it. Ellipses
// mark ends that were cut off.
func Excerpt(text, query string) (string, bool) {
	needle := lowerRunes([]rune(query))
	runes := []rune(text)
	idx := indexRunes(lowerRunes(runes), needle)
	if idx < 0 {
		return "", false
	}
	start := max(0, idx-ExcerptContext)
	end := min(len(runes), idx+len(needle)+ExcerptContext)

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(strings.TrimSpace(string(runes[start:end])))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String(), true
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
