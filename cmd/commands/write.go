package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/utils"
)

var (
	writeFile   string
	writeAppend bool
	writeAs     string
)

// NewWriteCommand creates the write command
func NewWriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <document> [text]",
		Short: "Replace or extend a document's text",
		Long: `Replace a document's content with new text. The change is one undo step.

The text comes from the argument, from --file (.txt, .md, .html or .docx),
or from standard input when neither is given. Use "." for the current
document.

Examples:
  # Replace the current document
  langotango write . "Il était une fois..."

  # Append a paragraph
  langotango write "Chapter 1" "Und dann?" --append

  # Import a Word document
  langotango write "Chapter 1" --file draft.docx

  # Pipe Markdown in
  cat notes.md | langotango write "Research/Notes" --as markdown`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if writeFile != "" {
				if len(args) > 1 {
					return fmt.Errorf("give either text or --file, not both")
				}
				if err := cli.ValidateFilePath(writeFile); err != nil {
					return err
				}
			}
			switch writeAs {
			case "text", "markdown", "html":
			default:
				return fmt.Errorf("invalid input format: %s (must be: text, markdown, or html)", writeAs)
			}
			return validateProject(cmd, args)
		},
		RunE: runWrite,
	}

	cmd.Flags().StringVarP(&writeFile, "file", "f", "", "Import content from a file")
	cmd.Flags().BoolVarP(&writeAppend, "append", "a", false, "Append to the document instead of replacing it")
	cmd.Flags().StringVar(&writeAs, "as", "text", "Format of text arguments and standard input: text, markdown or html")

	return cmd
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args[:1])
	if err != nil {
		return err
	}

	var body content.Content
	switch {
	case writeFile != "":
		body, err = cli.ReadContentFile(writeFile)
	case len(args) > 1:
		body, err = cli.ParseContent(writeAs, []byte(args[1]))
	default:
		var text string
		text, err = cli.ReadInput(cmd.InOrStdin())
		if err == nil {
			body, err = cli.ParseContent(writeAs, []byte(text))
		}
	}
	if err != nil {
		return err
	}

	if writeAppend {
		merged := doc.Content.Clone()
		body = append(merged, body...)
	}

	if !doc.Commit(body) {
		cli.PrintInfo("'%s' is unchanged", doc.DisplayName())
		return nil
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote '%s' (%s words)", ws.PathOf(doc), utils.FormatCount(doc.WordCount()))
	return nil
}
