package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/workspace"
)

const (
	ProjectExt         = ".lango"
	DefaultProjectFile = "LangoTango" + ProjectExt
	ProjectEnv         = "LANGOTANGO_PROJECT"
	WelcomeDocument    = "Hello"
	WelcomeText        = "It takes two to LangoTango!"
)

var (
	ErrNoProject        = errors.New("no project file found")
	ErrAmbiguousProject = errors.New("more than one project file found")
	ErrProjectExists    = errors.New("project file already exists")
)

// InitProject creates a new project file at path holding the welcome
// document, which is also made current.
func InitProject(path, rootName string, opts SaveOptions) (*workspace.Workspace, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, path)
	}

	ws := workspace.New(rootName)
	doc, err := ws.CreateDocument(ws.Root, WelcomeDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to create welcome document: %w", err)
	}
	doc.Commit(content.FromPlainText(WelcomeText))
	if err := ws.Open(doc); err != nil {
		return nil, err
	}

	if err := Save(path, ws, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// ProjectPath adds the project extension to name if it is missing.
func ProjectPath(name string) string {
	if strings.HasSuffix(name, ProjectExt) {
		return name
	}
	return name + ProjectExt
}

// FindProject locates the project to open from dir. The LANGOTANGO_PROJECT
// environment variable wins; otherwise DefaultProjectFile is used if present,
// or the only .lango file in dir.
func FindProject(dir string) (string, error) {
	if env := os.Getenv(ProjectEnv); env != "" {
		return env, nil
	}

	candidate := filepath.Join(dir, DefaultProjectFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+ProjectExt))
	if err != nil {
		return "", fmt.Errorf("failed to list project files: %w", err)
	}
	var projects []string
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil || workspace.IsDocumentFile(data) {
			continue
		}
		projects = append(projects, m)
	}
	sort.Strings(projects)

	switch len(projects) {
	case 0:
		return "", fmt.Errorf("%w in %s. Run 'langotango init' first", ErrNoProject, dir)
	case 1:
		return projects[0], nil
	default:
		names := make([]string, len(projects))
		for i, p := range projects {
			names[i] = filepath.Base(p)
		}
		return "", fmt.Errorf("%w: %s. Use --project to choose one", ErrAmbiguousProject, strings.Join(names, ", "))
	}
}
