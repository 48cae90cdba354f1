package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shokunin/langotango/pkg/files"
)

func TestConfirm(t *testing.T) {
	defer SetStreams(os.Stdin, os.Stdout, os.Stderr)
	defer SetGlobalFlags(false, false, false)

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		expected   bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty uses default", "\n", true, true},
		{"eof uses default", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			SetStreams(strings.NewReader(tt.input), &out, nil)
			got, err := Confirm("Empty the trash?", tt.defaultYes)
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Confirm() = %v, want %v", got, tt.expected)
			}
			if !strings.HasPrefix(out.String(), "Empty the trash?") {
				t.Errorf("prompt not written, got %q", out.String())
			}
		})
	}

	SetGlobalFlags(false, false, true)
	if ok, _ := Confirm("skip?", false); !ok {
		t.Error("--yes should skip the prompt")
	}
}

func TestPrintHelpers(t *testing.T) {
	defer SetStreams(os.Stdin, os.Stdout, os.Stderr)
	defer SetGlobalFlags(false, false, false)

	var out, errOut bytes.Buffer
	SetStreams(nil, &out, &errOut)

	SetGlobalFlags(false, true, false)
	PrintSuccess("saved %d", 3)
	PrintWarning("careful")
	if out.String() != "OK: saved 3\n" {
		t.Errorf("unexpected success output %q", out.String())
	}
	if errOut.String() != "WARNING: careful\n" {
		t.Errorf("unexpected warning output %q", errOut.String())
	}

	out.Reset()
	SetGlobalFlags(true, true, false)
	PrintInfo("hidden")
	if out.Len() != 0 {
		t.Errorf("quiet mode should suppress info, got %q", out.String())
	}
}

func TestOutputResults(t *testing.T) {
	data := map[string]int{"words": 42}

	var buf bytes.Buffer
	if err := OutputResults(&buf, "json", data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"words": 42`) {
		t.Errorf("unexpected json %q", buf.String())
	}

	buf.Reset()
	if err := OutputResults(&buf, "yaml", data); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "words: 42\n" {
		t.Errorf("unexpected yaml %q", buf.String())
	}

	if err := OutputResults(&buf, "xml", data); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"a long sentence", 8, "a lon..."},
		{"日本語のテキスト", 9, "日本語..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.input, tt.width); got != tt.expected {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestValidators(t *testing.T) {
	if err := ValidateItemName("document", "Chapter 1"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	for _, name := range []string{"", "  ", "a/b", `a\b`} {
		if err := ValidateItemName("folder", name); err == nil {
			t.Errorf("ValidateItemName(%q) should fail", name)
		}
	}
	if err := ValidateOutputFormat("yaml"); err != nil {
		t.Errorf("yaml rejected: %v", err)
	}
	if err := ValidateManuscriptFormat("pdf"); err == nil {
		t.Error("pdf should be rejected")
	}

	formats := map[string]string{
		"notes.txt":    "text",
		"README.md":    "markdown",
		"page.HTML":    "html",
		"essay.docx":   "docx",
		"no_extension": "text",
	}
	for path, expected := range formats {
		got, err := ImportFormat(path)
		if err != nil || got != expected {
			t.Errorf("ImportFormat(%q) = %q, %v; want %q", path, got, err, expected)
		}
	}
	if _, err := ImportFormat("slides.pptx"); err == nil {
		t.Error("pptx should be rejected")
	}
}

func TestReadContentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("Hello **world**"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := ReadContentFile(path)
	if err != nil {
		t.Fatalf("ReadContentFile() error = %v", err)
	}
	if c.PlainText() != "Hello world" {
		t.Errorf("unexpected text %q", c.PlainText())
	}
}

func TestCommandContextLoadAndSave(t *testing.T) {
	t.Setenv(files.ConfigEnv, t.TempDir())
	t.Setenv(files.ProjectEnv, "")

	path := filepath.Join(t.TempDir(), "novel.lango")
	ctx, _ := NewCommandContext(path)
	if err := ctx.ValidateProject(); err == nil {
		t.Fatal("expected error for missing project")
	}

	if _, err := files.InitProject(path, "Novel", files.SaveOptions{Logger: Logger()}); err != nil {
		t.Fatal(err)
	}

	ctx, _ = NewCommandContext(path)
	ws, err := ctx.LoadWorkspace()
	if err != nil {
		t.Fatalf("LoadWorkspace() error = %v", err)
	}
	if _, err := ws.CreateFolder(ws.Root, "Drafts"); err != nil {
		t.Fatal(err)
	}
	ctx.LoadSettingsWithDefault().Project.DisableBackups = true
	if err := ctx.SaveWorkspace(); err != nil {
		t.Fatalf("SaveWorkspace() error = %v", err)
	}

	reloaded, err := files.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reloaded.ResolveFolder("Drafts"); err != nil {
		t.Errorf("saved folder missing: %v", err)
	}

	// A directory argument finds the project inside it.
	dirCtx, _ := NewCommandContext(filepath.Dir(path))
	if err := dirCtx.ValidateProject(); err != nil || dirCtx.ProjectPath != path {
		t.Errorf("ValidateProject(dir) = %v, path %q", err, dirCtx.ProjectPath)
	}
}
