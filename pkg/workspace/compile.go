package workspace

import "github.com/shokunin/langotango/pkg/content"

// SectionKind distinguishes folder headings from documents in compile output.
type SectionKind int

const (
	SectionFolder SectionKind = iota
	SectionDocument
)

func (k SectionKind) String() string {
	if k == SectionFolder {
		return "folder"
	}
	return "document"
}

// Section is one record of compile output. Folder sections carry only a
// heading; document sections also carry the rendered body.
type Section struct {
	Kind     SectionKind
	Level    int
	Title    string
	Body     string
	Document *Document
	Folder   *Folder
}

// CompileOptions controls Compile. A nil Exclude means Research and Trash;
// an empty non-nil slice excludes nothing. Append folders are compiled after
// the root as level 1 folders, for example to add Research as an appendix.
type CompileOptions struct {
	Exclude []*Folder
	Append  []*Folder
	Format  content.Format
}

// Compile flattens the root folder into sections in pre-order, keeping each
// folder's item order. Level is the depth below the root, so the root's
// direct children are level 1. Excluded folders are skipped along with
// everything inside them. Document titles drop the persisted suffix.
func (w *Workspace) Compile(opts CompileOptions) []Section {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = []*Folder{w.Research, w.Trash}
	}
	format := opts.Format
	if format == "" {
		format = content.FormatText
	}

	excluded := func(f *Folder) bool {
		for _, e := range exclude {
			if e == f {
				return true
			}
		}
		return false
	}

	var sections []Section
	var visit func(f *Folder, level int)
	visit = func(f *Folder, level int) {
		for _, item := range f.Items {
			switch v := item.(type) {
			case *Document:
				sections = append(sections, Section{
					Kind:     SectionDocument,
					Level:    level,
					Title:    v.DisplayName(),
					Body:     v.Content.Render(format),
					Document: v,
				})
			case *Folder:
				if excluded(v) {
					continue
				}
				sections = append(sections, Section{
					Kind:   SectionFolder,
					Level:  level,
					Title:  v.Name,
					Folder: v,
				})
				visit(v, level+1)
			}
		}
	}
	if !excluded(w.Root) {
		visit(w.Root, 1)
	}
	for _, f := range opts.Append {
		sections = append(sections, Section{
			Kind:   SectionFolder,
			Level:  1,
			Title:  f.Name,
			Folder: f,
		})
		visit(f, 2)
	}
	return sections
}
