package commands

import (
	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/content"
)

var (
	editPlain bool
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [document]",
		Short: "Edit a document in your editor",
		Long: `Edit a document in your editor (editor.command in settings, else $EDITOR).

The document is opened as Markdown so bold, italic and headings survive the
round trip; use --plain to edit it as plain text. Saving the file commits
one undo step.

Examples:
  # Edit the current document
  langotango edit

  # Edit a specific document with a specific editor
  EDITOR=nano langotango edit "Part One/Chapter 1"`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateProject,
		RunE:    runEdit,
	}

	cmd.Flags().BoolVar(&editPlain, "plain", false, "Edit as plain text")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args)
	if err != nil {
		return err
	}

	format, pattern := "markdown", "langotango-*.md"
	text := doc.Content.Markdown()
	if editPlain {
		format, pattern = "text", "langotango-*.txt"
		text = doc.Content.PlainText()
	}

	launcher := cli.NewEditorLauncher(ctx.LoadSettingsWithDefault().Editor.Command)
	cli.PrintInfo("Opening '%s' in %s...", doc.DisplayName(), launcher.DefaultEditor)
	edited, err := launcher.EditText(pattern, text)
	if err != nil {
		return err
	}
	if edited == text {
		cli.PrintInfo("No changes")
		return nil
	}

	var body content.Content
	if body, err = cli.ParseContent(format, []byte(edited)); err != nil {
		return err
	}
	if !doc.Commit(body) {
		cli.PrintInfo("No changes")
		return nil
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Document '%s' edited successfully", doc.DisplayName())
	return nil
}
