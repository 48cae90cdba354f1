package composer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/workspace"
)

func testWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := workspace.New("Novel")
	part, err := ws.CreateFolder(ws.Root, "Part One")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	chapter, err := ws.CreateDocument(part, "Chapter 1")
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	span := content.NewSpan("It was a dark night.")
	span.Bold = true
	chapter.Commit(content.Content{{Alignment: content.AlignLeft, Spans: []content.Span{span}}})

	epilogue, _ := ws.CreateDocument(ws.Root, "Epilogue")
	epilogue.Commit(content.FromPlainText("The end."))

	notes, _ := ws.CreateDocument(ws.Research, "Notes")
	notes.Commit(content.FromPlainText("secret research"))
	trashed, _ := ws.CreateDocument(ws.Trash, "Discarded")
	trashed.Commit(content.FromPlainText("thrown away"))
	return ws
}

func TestComposeWorkspaceText(t *testing.T) {
	ws := testWorkspace(t)

	output, err := ComposeWorkspace(ws, Options{Format: content.FormatText})
	if err != nil {
		t.Fatalf("ComposeWorkspace failed: %v", err)
	}

	expected := "# Novel\n\n" +
		"\n# Part One\n\n" +
		"\n### Chapter 1\n\nIt was a dark night.\n\n" +
		"\n## Epilogue\n\nThe end.\n\n"
	if output != expected {
		t.Errorf("unexpected manuscript:\n%q\nwant:\n%q", output, expected)
	}
}

func TestComposeWorkspaceMarkdown(t *testing.T) {
	ws := testWorkspace(t)

	output, err := ComposeWorkspace(ws, Options{Format: content.FormatMarkdown})
	if err != nil {
		t.Fatalf("ComposeWorkspace failed: %v", err)
	}
	if !strings.Contains(output, "**It was a dark night.**") {
		t.Errorf("markdown body missing bold text:\n%s", output)
	}
	for _, unwanted := range []string{"secret research", "thrown away"} {
		if strings.Contains(output, unwanted) {
			t.Errorf("manuscript should not contain %q", unwanted)
		}
	}
}

func TestComposeWorkspaceHTML(t *testing.T) {
	ws := testWorkspace(t)
	ws.Root.Name = "Tom & Jerry"

	output, err := ComposeWorkspace(ws, Options{Format: content.FormatHTML})
	if err != nil {
		t.Fatalf("ComposeWorkspace failed: %v", err)
	}

	expectedElements := []string{
		"<!DOCTYPE html>",
		"<title>Tom &amp; Jerry</title>",
		`font-size: 18pt; text-align: center;">Tom &amp; Jerry</div>`,
		`font-size: 16pt; text-align: center;">Part One</div>`,
		`font-size: 14pt; text-align: center;">Chapter 1</div>`,
		"font-weight: bold",
	}
	for _, expected := range expectedElements {
		if !strings.Contains(output, expected) {
			t.Errorf("expected HTML to contain %q", expected)
		}
	}
}

func TestComposeIncludeResearch(t *testing.T) {
	ws := testWorkspace(t)

	output, err := ComposeWorkspace(ws, Options{IncludeResearch: true})
	if err != nil {
		t.Fatalf("ComposeWorkspace failed: %v", err)
	}
	if !strings.Contains(output, "\n# Research\n\n\n### Notes\n\nsecret research") {
		t.Errorf("research appendix missing:\n%s", output)
	}
	if strings.Contains(output, "thrown away") {
		t.Error("trash must never be compiled")
	}
}

func TestComposeNilWorkspace(t *testing.T) {
	if _, err := ComposeWorkspace(nil, Options{}); err == nil {
		t.Error("expected error for nil workspace")
	}
}

func TestOptionsFromSettings(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Compile.Format = "md"
	settings.Compile.IncludeResearch = true

	opts, err := OptionsFromSettings(settings, "")
	if err != nil {
		t.Fatalf("OptionsFromSettings failed: %v", err)
	}
	if opts.Format != content.FormatMarkdown || !opts.IncludeResearch {
		t.Errorf("unexpected options: %+v", opts)
	}

	opts, _ = OptionsFromSettings(settings, "html")
	if opts.Format != content.FormatHTML {
		t.Errorf("flag should override settings, got %s", opts.Format)
	}

	if _, err := OptionsFromSettings(settings, "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestManuscriptPath(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Compile.ExportPath = "out"

	tests := []struct {
		format   content.Format
		explicit string
		expected string
	}{
		{content.FormatText, "", filepath.Join("out", "manuscript.txt")},
		{content.FormatMarkdown, "", filepath.Join("out", "manuscript.md")},
		{content.FormatHTML, "", filepath.Join("out", "manuscript.html")},
		{content.FormatHTML, "book.htm", "book.htm"},
	}
	for _, tt := range tests {
		if got := ManuscriptPath(settings, tt.format, tt.explicit); got != tt.expected {
			t.Errorf("ManuscriptPath(%s, %q) = %q, want %q", tt.format, tt.explicit, got, tt.expected)
		}
	}
}

func TestWriteManuscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "novel.txt")
	if err := WriteManuscript("# Novel\n", path); err != nil {
		t.Fatalf("WriteManuscript failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manuscript: %v", err)
	}
	if string(data) != "# Novel\n" {
		t.Errorf("unexpected file content: %q", data)
	}
}
