package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/files"
)

var (
	initRootName string
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new LangoTango project",
		Long: `Create a new project file holding a welcome document.

The project file is named <name>.lango in the current directory, or
LangoTango.lango when no name is given. Use --project to choose the
full path instead.

Examples:
  # Create LangoTango.lango here
  langotango init

  # Create novel.lango with a custom root folder name
  langotango init novel --root-name "My Novel"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initRootName, "root-name", "", "Name of the root folder (default from settings)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx, err := projectContext(cmd)
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	path := ctx.ProjectPath
	if path == "" {
		name := files.DefaultProjectFile
		if len(args) > 0 {
			name = files.ProjectPath(args[0])
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
		path = filepath.Join(cwd, name)
	}

	rootName := initRootName
	if rootName == "" {
		rootName = settings.Project.DefaultRootName
	}

	cli.PrintInfo("Creating project %s...", path)
	if _, err := files.InitProject(path, rootName, ctx.SaveOptions()); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	cli.PrintSuccess("Created project with root folder '%s'", rootName)
	cli.PrintInfo("Run 'langotango' to browse it, or 'langotango list' to see its contents.")
	return nil
}
