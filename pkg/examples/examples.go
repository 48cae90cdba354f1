package examples

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/workspace"
)

// ErrExists is returned when an example would replace an existing document
var ErrExists = errors.New("document already exists")

// Categories lists the example sets in install order
var Categories = []string{"story", "journal", "vocabulary"}

// ExampleSet represents a collection of related example documents
type ExampleSet struct {
	Category    string            `json:"category" yaml:"category"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Documents   []ExampleDocument `json:"documents" yaml:"documents"`
}

// ExampleDocument is one document to add. Path is slash separated; a
// leading "Research" places it in the Research folder, anything else is
// relative to the root. Content is Markdown.
type ExampleDocument struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// GetExamples returns example sets for the given category, or every set for
// "all". Unknown categories return nothing.
func GetExamples(category string) []ExampleSet {
	if category == "all" {
		var all []ExampleSet
		for _, c := range Categories {
			all = append(all, GetExamples(c)...)
		}
		return all
	}

	var sets []ExampleSet
	switch category {
	case "story":
		sets = getStoryExamples()
	case "journal":
		sets = getJournalExamples()
	case "vocabulary":
		sets = getVocabularyExamples()
	default:
		return []ExampleSet{}
	}
	for i := range sets {
		sets[i].Category = category
	}
	return sets
}

// ValidCategory reports whether category names a set or "all"
func ValidCategory(category string) bool {
	if category == "all" {
		return true
	}
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// InstallDocument adds doc to ws, creating the folders on its path. It
// returns false without changes when a document already exists at the path,
// unless force is set, in which case the existing document gets the example
// text as one new undo step.
func InstallDocument(ws *workspace.Workspace, doc ExampleDocument, force bool) (bool, error) {
	parts := strings.Split(strings.Trim(doc.Path, "/"), "/")
	parent := ws.Root
	if len(parts) > 1 && parts[0] == workspace.ResearchName {
		parent = ws.Research
		parts = parts[1:]
	}

	for _, name := range parts[:len(parts)-1] {
		f, err := childFolder(ws, parent, name)
		if err != nil {
			return false, err
		}
		parent = f
	}

	body, err := content.FromMarkdown([]byte(doc.Content))
	if err != nil {
		return false, fmt.Errorf("failed to parse example %s: %w", doc.Path, err)
	}

	name := parts[len(parts)-1]
	if existing := childDocument(parent, name); existing != nil {
		if !force {
			return false, fmt.Errorf("%w at %s", ErrExists, doc.Path)
		}
		existing.Commit(body)
		return true, nil
	}

	d, err := ws.CreateDocument(parent, name)
	if err != nil {
		return false, err
	}
	d.Commit(body)
	return true, nil
}

func childFolder(ws *workspace.Workspace, parent *workspace.Folder, name string) (*workspace.Folder, error) {
	for _, item := range parent.Items {
		if f, ok := item.(*workspace.Folder); ok && f.Name == name {
			return f, nil
		}
	}
	return ws.CreateFolder(parent, name)
}

func childDocument(parent *workspace.Folder, name string) *workspace.Document {
	for _, item := range parent.Items {
		if d, ok := item.(*workspace.Document); ok && d.DisplayName() == name {
			return d
		}
	}
	return nil
}
