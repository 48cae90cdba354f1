package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/examples"
)

var (
	examplesList  bool
	examplesForce bool
)

// NewExamplesCommand creates the examples command
func NewExamplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples [category]",
		Short: "Add example documents to your project",
		Long: `Add example documents to the project for writing practice.

Categories:
  story        - A short story in three parts with a character sheet (default)
  journal      - Daily journal entries and writing prompts
  vocabulary   - Themed word lists in the Research folder
  all          - Install every category

Existing documents are left alone unless --force is given, in which case
the example text replaces theirs as a new undo step.`,
		Example: `  # Add the story example
  langotango examples

  # List what is available without installing
  langotango examples --list

  # Add everything
  langotango examples all`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !examples.ValidCategory(args[0]) {
				return fmt.Errorf("invalid category '%s'. Valid categories: %s, all",
					args[0], strings.Join(examples.Categories, ", "))
			}
			if examplesList {
				return nil
			}
			return validateProject(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) > 0 {
				category = args[0]
			}
			if examplesList {
				if category == "" {
					category = "all"
				}
				return listExamples(cmd, category)
			}
			if category == "" {
				category = "story"
			}
			return installExamples(cmd, category)
		},
	}

	cmd.Flags().BoolVarP(&examplesList, "list", "l", false, "List available examples without installing")
	cmd.Flags().BoolVarP(&examplesForce, "force", "f", false, "Replace the text of existing documents")

	return cmd
}

func listExamples(cmd *cobra.Command, category string) error {
	sets := examples.GetExamples(category)
	if outputFormat(cmd) != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat(cmd), sets)
	}

	out := cmd.OutOrStdout()
	for _, set := range sets {
		fmt.Fprintf(out, "[%s] %s\n", set.Category, set.Name)
		fmt.Fprintf(out, "   %s\n", set.Description)
		for _, doc := range set.Documents {
			fmt.Fprintf(out, "   • %s\n", doc.Path)
		}
		fmt.Fprintln(out)
	}
	cli.PrintInfo("To install a category, run: langotango examples <category>")
	return nil
}

func installExamples(cmd *cobra.Command, category string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	installed, skipped := 0, 0
	for _, set := range examples.GetExamples(category) {
		cli.PrintInfo("Installing %s...", set.Name)
		for _, doc := range set.Documents {
			ok, err := examples.InstallDocument(ws, doc, examplesForce)
			if errors.Is(err, examples.ErrExists) {
				skipped++
				cli.PrintWarning("Skipped %s (already exists, use --force to replace)", doc.Path)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to install %s: %w", doc.Path, friendlyError(err))
			}
			if ok {
				installed++
			}
		}
	}

	if installed == 0 {
		cli.PrintInfo("Nothing installed (%d skipped)", skipped)
		return nil
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}
	cli.PrintSuccess("Installed %d document(s), skipped %d", installed, skipped)
	return nil
}
