package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/workspace"
)

// projectContext builds a command context from the --project flag
func projectContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	project, _ := cmd.Flags().GetString("project")
	return cli.NewCommandContext(project)
}

// validateProject is the PreRunE shared by commands that need a project
func validateProject(cmd *cobra.Command, args []string) error {
	ctx, err := projectContext(cmd)
	if err != nil {
		return err
	}
	return ctx.ValidateProject()
}

// loadProject opens the project named by --project
func loadProject(cmd *cobra.Command) (*cli.CommandContext, *workspace.Workspace, error) {
	ctx, err := projectContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	ws, err := ctx.LoadWorkspace()
	if err != nil {
		return nil, nil, err
	}
	return ctx, ws, nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText)
	}
	return format
}

// documentArg resolves an optional document path argument. Without one, or
// with ".", the current document is used.
func documentArg(ws *workspace.Workspace, args []string) (*workspace.Document, error) {
	if len(args) == 0 || args[0] == "" || args[0] == "." {
		if ws.Current == nil {
			return nil, fmt.Errorf("no document is open. Name one, or run 'langotango open <document>'")
		}
		return ws.Current, nil
	}
	doc, _, err := ws.ResolveDocument(args[0])
	if err != nil {
		return nil, friendlyError(err)
	}
	return doc, nil
}

// friendlyError rewrites workspace errors into command-line wording
func friendlyError(err error) error {
	var notFound *workspace.NotFoundError
	var cycle *workspace.CycleError
	switch {
	case errors.As(err, &cycle):
		return fmt.Errorf("cannot move folder '%s' into itself or one of its subfolders", cycle.Folder)
	case errors.As(err, &notFound):
		if notFound.Folder != "" {
			return fmt.Errorf("'%s' not found in '%s'. Run 'langotango list' to see the project", notFound.Item, notFound.Folder)
		}
		return fmt.Errorf("'%s' not found. Run 'langotango list' to see the project", notFound.Item)
	case errors.Is(err, workspace.ErrSpecialFolder):
		return fmt.Errorf("the Research and Trash folders cannot be renamed")
	case errors.Is(err, workspace.ErrInvalidName):
		return fmt.Errorf("invalid name: names cannot be empty")
	}
	return err
}

func itemKind(item workspace.Item) string {
	if _, ok := item.(*workspace.Folder); ok {
		return "folder"
	}
	return "document"
}

// oneLine collapses whitespace so text fits in a table cell
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
