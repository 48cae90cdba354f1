package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/files"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/tutors"
	"github.com/shokunin/langotango/pkg/workspace"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	Workspace   *workspace.Workspace
	validated   bool
}

// NewCommandContext creates a new command context. An empty projectPath is
// resolved from settings, LANGOTANGO_PROJECT or the working directory when
// the project is first needed.
func NewCommandContext(projectPath string) (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: projectPath,
	}, nil
}

// ValidateProject ensures a project file exists
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if c.ProjectPath == "" {
		path, err := c.findProject()
		if err != nil {
			return err
		}
		c.ProjectPath = path
	}

	info, err := os.Stat(c.ProjectPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("project %s not found. Run 'langotango init' first", c.ProjectPath)
	}
	if err != nil {
		return fmt.Errorf("error accessing project: %w", err)
	}
	if info.IsDir() {
		path, err := files.FindProject(c.ProjectPath)
		if err != nil {
			return err
		}
		c.ProjectPath = path
	}

	c.validated = true
	return nil
}

func (c *CommandContext) findProject() (string, error) {
	if env := os.Getenv(files.ProjectEnv); env != "" {
		return env, nil
	}
	settings := c.LoadSettingsWithDefault()
	if p := settings.Project.DefaultPath; p != "" {
		if strings.HasSuffix(p, files.ProjectExt) {
			return p, nil
		}
		return files.FindProject(p)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine current directory: %w", err)
	}
	return files.FindProject(cwd)
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		logger.Warn().Err(err).Msg("using default settings")
		// Use default settings if can't read
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// LoadWorkspace reads the project file once per command
func (c *CommandContext) LoadWorkspace() (*workspace.Workspace, error) {
	if c.Workspace != nil {
		return c.Workspace, nil
	}
	if err := c.ValidateProject(); err != nil {
		return nil, err
	}

	ws, err := files.Load(c.ProjectPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("project", c.ProjectPath).Int("documents", len(ws.Documents())).Msg("project loaded")

	c.Workspace = ws
	return ws, nil
}

// SaveOptions returns the save options for the current settings
func (c *CommandContext) SaveOptions() files.SaveOptions {
	return files.SaveOptionsFromSettings(c.LoadSettingsWithDefault(), logger)
}

// SaveWorkspace writes the loaded workspace back to the project file
func (c *CommandContext) SaveWorkspace() error {
	if c.Workspace == nil {
		return fmt.Errorf("no project loaded")
	}
	if err := files.Save(c.ProjectPath, c.Workspace, c.SaveOptions()); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Tutors opens the tutor registry next to the settings file
func (c *CommandContext) Tutors() (*tutors.Registry, error) {
	path, err := files.TutorsPath()
	if err != nil {
		return nil, err
	}
	return tutors.NewRegistry(path)
}

// ReadContentFile imports a text, Markdown, HTML or DOCX file
func ReadContentFile(path string) (content.Content, error) {
	format, err := ImportFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseContent(format, data)
}

// ParseContent converts raw bytes in the named import format
func ParseContent(format string, data []byte) (content.Content, error) {
	switch format {
	case "markdown":
		return content.FromMarkdown(data)
	case "html":
		return content.FromHTML(bytes.NewReader(data))
	case "docx":
		return content.FromDOCX(bytes.NewReader(data), int64(len(data)))
	case "text":
		return content.FromPlainText(string(data)), nil
	}
	return nil, fmt.Errorf("unsupported import format: %s", format)
}

// ReadInput reads all of r, used for piping text into a document
func ReadInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher. The configured command
// wins over $EDITOR.
func NewEditorLauncher(configured string) *EditorLauncher {
	editor := configured
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	parts := strings.Fields(e.DefaultEditor)

	var editorCmd *exec.Cmd
	if len(parts) > 1 {
		editorCmd = exec.Command(parts[0], append(parts[1:], path)...)
	} else {
		editorCmd = exec.Command(e.DefaultEditor, path)
	}

	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// EditText writes text to a temp file, opens it in the editor and returns
// the edited text. pattern is passed to os.CreateTemp, so "*.md" keeps the
// extension editors use for syntax highlighting.
func (e *EditorLauncher) EditText(pattern, text string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmpFile.Name()
	defer os.Remove(path)

	if _, err := tmpFile.WriteString(text); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := e.OpenFile(path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
