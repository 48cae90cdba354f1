package files

import (
	"fmt"
	"os"

	"github.com/shokunin/langotango/pkg/workspace"
)

// Load reads a project file. Files written by the single-document versions
// are opened as a workspace holding that document. The returned workspace is
// new; callers replace their in-memory workspace only when err is nil.
func Load(path string) (*workspace.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}

	var ws *workspace.Workspace
	if workspace.IsDocumentFile(data) {
		ws, err = workspace.UnmarshalDocument(data)
	} else {
		ws, err = workspace.Unmarshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", path, err)
	}

	return ws, nil
}
