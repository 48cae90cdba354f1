package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/tui"
)

// NewBrowseCommand creates the browse command
func NewBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the project in the terminal interface",
		Long: `Open the project tree and document preview in the terminal.

Documents are edited in your editor; the project is auto-saved every
project.autosave_seconds seconds while changes are pending.`,
		Args:    cobra.NoArgs,
		PreRunE: validateProject,
		RunE:    RunBrowse,
	}

	return cmd
}

// RunBrowse starts the terminal interface. It is also the root command's
// default action.
func RunBrowse(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	app := tui.NewApp(ws, tui.Options{
		Path:     ctx.ProjectPath,
		Settings: ctx.LoadSettingsWithDefault(),
		Logger:   cli.Logger(),
		Save:     ctx.SaveOptions(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal interface: %w", err)
	}
	return nil
}
