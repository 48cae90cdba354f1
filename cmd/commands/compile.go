package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/composer"
	"github.com/shokunin/langotango/pkg/utils"
)

var (
	compileFormat   string
	compileFile     string
	compileCopy     bool
	compileStdout   bool
	compileResearch bool
)

// NewCompileCommand creates the compile command
func NewCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the project into one manuscript",
		Long: `Compile every document of the root folder, in tree order, into one
manuscript. Folders become headings. Research and Trash are left out.

Formats:
  text      - # headings and plain text
  markdown  - # headings and Markdown with bold, italic and highlights
  html      - centered titles and fully formatted text

The manuscript is written to compile.export_path/compile.default_filename
from settings unless --file is given.

Examples:
  # Compile with the configured format
  langotango compile

  # HTML manuscript at a specific path
  langotango compile --format html --file novel.html

  # Copy a Markdown manuscript to the clipboard
  langotango compile --format markdown --copy`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if compileFormat != "" {
				if err := cli.ValidateManuscriptFormat(compileFormat); err != nil {
					return err
				}
			}
			return validateProject(cmd, args)
		},
		RunE: runCompile,
	}

	cmd.Flags().StringVarP(&compileFormat, "format", "f", "", "Manuscript format: text, markdown or html (default from settings)")
	cmd.Flags().StringVar(&compileFile, "file", "", "Output file")
	cmd.Flags().BoolVarP(&compileCopy, "copy", "c", false, "Copy the manuscript to the clipboard instead of writing a file")
	cmd.Flags().BoolVar(&compileStdout, "stdout", false, "Print the manuscript instead of writing a file")
	cmd.Flags().BoolVar(&compileResearch, "include-research", false, "Append the Research folder")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	opts, err := composer.OptionsFromSettings(settings, compileFormat)
	if err != nil {
		return err
	}
	if compileResearch {
		opts.IncludeResearch = true
	}

	manuscript, err := composer.ComposeWorkspace(ws, opts)
	if err != nil {
		return fmt.Errorf("failed to compile project: %w", err)
	}

	switch {
	case compileStdout:
		fmt.Fprint(cmd.OutOrStdout(), manuscript)
		return nil
	case compileCopy:
		if err := clipboard.WriteAll(manuscript); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %s manuscript to clipboard (%s words, %s)",
			opts.Format, utils.FormatCount(ws.WordCount()), utils.FormatTokenCount(utils.EstimateTokens(manuscript)))
		return nil
	}

	path := composer.ManuscriptPath(settings, opts.Format, compileFile)
	if err := composer.WriteManuscript(manuscript, path); err != nil {
		return err
	}
	cli.PrintSuccess("Compiled %s words to %s", utils.FormatCount(ws.WordCount()), path)
	return nil
}
