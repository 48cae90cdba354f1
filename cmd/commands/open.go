package commands

import (
	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
)

// NewOpenCommand creates the open command
func NewOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <document>",
		Short: "Make a document the current one",
		Long: `Make a document the current one. Commands that take an optional
document argument work on the current document when none is given.

Examples:
  langotango open "Part One/Chapter 1"`,
		Args:    cobra.ExactArgs(1),
		PreRunE: validateProject,
		RunE:    runOpen,
	}

	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args)
	if err != nil {
		return err
	}
	if err := ws.Open(doc); err != nil {
		return friendlyError(err)
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Opened '%s'", ws.PathOf(doc))
	return nil
}
