package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/utils"
	"github.com/shokunin/langotango/pkg/workspace"
)

// DocumentOutput represents the output structure for show command
type DocumentOutput struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Words    int    `json:"words" yaml:"words"`
	Created  string `json:"created" yaml:"created"`
	Modified string `json:"modified" yaml:"modified"`
	CanUndo  bool   `json:"can_undo" yaml:"can_undo"`
	CanRedo  bool   `json:"can_redo" yaml:"can_redo"`
	Content  string `json:"content" yaml:"content"`
}

var (
	showFormat string
	showInfo   bool
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [document]",
		Short: "Print a document",
		Long: `Print a document's text. Without an argument the current document is shown.

Examples:
  # Show the current document
  langotango show

  # Show a document as Markdown with its details
  langotango show "Part One/Chapter 1" --format markdown --info

  # Export the document as HTML
  langotango show "Chapter 1" --format html > chapter.html`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateManuscriptFormat(showFormat); err != nil {
				return err
			}
			return validateProject(cmd, args)
		},
		RunE: runShow,
	}

	cmd.Flags().StringVarP(&showFormat, "format", "f", "text", "Render format: text, markdown or html")
	cmd.Flags().BoolVar(&showInfo, "info", false, "Print document details before the text")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	_, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args)
	if err != nil {
		return err
	}
	format, _ := content.ParseFormat(showFormat)

	out := documentOutput(ws, doc)
	out.Content = doc.Content.Render(format)

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, out)
	}

	w := cmd.OutOrStdout()
	if showInfo {
		fmt.Fprintf(w, "Document: %s\n", out.Path)
		fmt.Fprintf(w, "Words: %s\n", utils.FormatCount(out.Words))
		fmt.Fprintf(w, "Created: %s\n", out.Created)
		fmt.Fprintf(w, "Modified: %s\n", out.Modified)
		fmt.Fprintf(w, "Undo available: %t, redo available: %t\n", out.CanUndo, out.CanRedo)
		fmt.Fprintln(w, "---")
	}
	fmt.Fprintln(w, out.Content)
	return nil
}

func documentOutput(ws *workspace.Workspace, doc *workspace.Document) DocumentOutput {
	out := DocumentOutput{
		Name:     doc.DisplayName(),
		Path:     ws.PathOf(doc),
		Words:    doc.WordCount(),
		Created:  doc.Created.Format("2006-01-02 15:04:05"),
		Modified: doc.Modified.Format("2006-01-02 15:04:05"),
	}
	if doc.History != nil {
		out.CanUndo = doc.History.CanUndo()
		out.CanRedo = doc.History.CanRedo()
	}
	return out
}
