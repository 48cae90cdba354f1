package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/cmd/commands"
	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/files"
	"github.com/shokunin/langotango/pkg/logger"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	projectFlag string
	outputFlag  string
	quietFlag   bool
	noColorFlag bool
	yesFlag     bool
	verboseFlag bool

	logData *logger.LogData
)

var rootCmd = &cobra.Command{
	Use:   "langotango",
	Short: "A writing workspace for language learners",
	Long: `LangoTango is a writing workspace for language learners. Organize documents
in folders, keep research and trash apart from the manuscript, undo any
edit, and compile everything into one manuscript. Language tutors react to
what you write through a local inference server.

Run without a command to open the project in the terminal interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.ValidateOutputFormat(outputFlag); err != nil {
			return err
		}
		cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag)
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logData != nil {
			logData.Close()
		}
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(projectFlag)
		if err != nil {
			return err
		}
		return ctx.ValidateProject()
	},
	RunE: commands.RunBrowse,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of LangoTango",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "LangoTango version %s\n", version)
	},
}

// setupLogging builds the diagnostics logger from settings. --verbose
// switches to debug output on stderr.
func setupLogging() error {
	settings, err := files.ReadSettings()
	if err != nil {
		return err
	}

	build := logger.New().WithLevel(settings.Logging.Level).FromPath(settings.Logging.File)
	if verboseFlag {
		build = logger.New().WithLevel("debug").Pretty(true)
	}
	logData, err = build.Make()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	cli.SetLogger(logData.Logger)
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&projectFlag, "project", "p", "", "Project file or directory (default: $"+files.ProjectEnv+", settings, or the current directory)")
	flags.StringVarP(&outputFlag, "output", "o", "text", "Output format: text, json or yaml")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational messages")
	flags.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to confirmations")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(
		versionCmd,
		commands.NewInitCommand(),
		commands.NewBrowseCommand(),
		commands.NewListCommand(),
		commands.NewShowCommand(),
		commands.NewOpenCommand(),
		commands.NewNewCommand(),
		commands.NewWriteCommand(),
		commands.NewEditCommand(),
		commands.NewReplaceCommand(),
		commands.NewUndoCommand(),
		commands.NewRedoCommand(),
		commands.NewHistoryCommand(),
		commands.NewRenameCommand(),
		commands.NewMoveCommand(),
		commands.NewTrashCommand(),
		commands.NewResearchCommand(),
		commands.NewEmptyTrashCommand(),
		commands.NewCompileCommand(),
		commands.NewSearchCommand(),
		commands.NewStatsCommand(),
		commands.NewTutorCommand(),
		commands.NewSettingsCommand(),
		commands.NewExamplesCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
