// Package composer renders a compiled workspace into a single manuscript.
package composer

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/models"
	"github.com/shokunin/langotango/pkg/workspace"
)

const (
	titleFont         = "Courier New"
	rootTitleSize     = 18
	folderTitleSize   = 16
	documentTitleSize = 14
)

// Options controls ComposeWorkspace.
type Options struct {
	Format          content.Format
	IncludeResearch bool
}

// OptionsFromSettings reads compile options from settings. A non-empty
// format overrides the configured one.
func OptionsFromSettings(settings *models.Settings, format string) (Options, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if format == "" {
		format = settings.Compile.Format
	}
	f, err := content.ParseFormat(format)
	if err != nil {
		return Options{}, err
	}
	return Options{Format: f, IncludeResearch: settings.Compile.IncludeResearch}, nil
}

// ComposeWorkspace renders the root folder, and optionally Research, as one
// manuscript. Text and Markdown manuscripts use # headings: the root title
// first, folders at their level and documents one level deeper. HTML
// manuscripts use centered title blocks instead.
func ComposeWorkspace(ws *workspace.Workspace, opts Options) (string, error) {
	if ws == nil || ws.Root == nil {
		return "", fmt.Errorf("cannot compose: no workspace loaded")
	}
	if opts.Format == "" {
		opts.Format = content.FormatText
	}

	compileOpts := workspace.CompileOptions{Format: opts.Format}
	if opts.IncludeResearch {
		compileOpts.Append = []*workspace.Folder{ws.Research}
	}
	sections := ws.Compile(compileOpts)

	if opts.Format == content.FormatHTML {
		return composeHTML(ws.Root.Name, sections), nil
	}
	return composeText(ws.Root.Name, sections), nil
}

func composeText(title string, sections []workspace.Section) string {
	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", title))

	for _, section := range sections {
		if section.Kind == workspace.SectionFolder {
			output.WriteString(fmt.Sprintf("\n%s %s\n\n", strings.Repeat("#", section.Level), section.Title))
			continue
		}
		output.WriteString(fmt.Sprintf("\n%s %s\n\n", strings.Repeat("#", section.Level+1), section.Title))
		output.WriteString(section.Body)
		output.WriteString("\n\n")
	}

	return output.String()
}

func composeHTML(title string, sections []workspace.Section) string {
	var output strings.Builder
	output.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	output.WriteString(fmt.Sprintf("<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title)))
	output.WriteString(titleBlock(title, rootTitleSize))

	for _, section := range sections {
		if section.Kind == workspace.SectionFolder {
			output.WriteString(titleBlock(section.Title, folderTitleSize))
			continue
		}
		output.WriteString(titleBlock(section.Title, documentTitleSize))
		output.WriteString(section.Body)
		output.WriteString("\n<br/><br/>\n")
	}

	output.WriteString("</body>\n</html>\n")
	return output.String()
}

func titleBlock(title string, size int) string {
	return fmt.Sprintf("<div style=\"font-family: %s; font-size: %dpt; text-align: center;\">%s</div><br/>\n",
		titleFont, size, html.EscapeString(title))
}

// Extension returns the file extension for a manuscript format.
func Extension(f content.Format) string {
	switch f {
	case content.FormatMarkdown:
		return ".md"
	case content.FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ManuscriptPath picks the output path. An explicit path wins; otherwise the
// configured export path and default filename are used with the format's
// extension.
func ManuscriptPath(settings *models.Settings, f content.Format, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if settings == nil {
		settings = models.DefaultSettings()
	}
	name := settings.Compile.DefaultFilename
	if name == "" {
		name = "manuscript"
	}
	return filepath.Join(settings.Compile.ExportPath, name+Extension(f))
}

// WriteManuscript writes the composed manuscript to the output file
func WriteManuscript(manuscript string, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for manuscript: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(manuscript), 0644); err != nil {
		return fmt.Errorf("failed to write manuscript %s: %w", outputPath, err)
	}
	return nil
}
