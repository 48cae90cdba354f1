package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/workspace"
)

// ReplaceResult represents the output of the replace command
type ReplaceResult struct {
	Find         string           `json:"find" yaml:"find"`
	Replace      string           `json:"replace" yaml:"replace"`
	Total        int              `json:"total" yaml:"total"`
	Replacements []ReplaceSummary `json:"documents" yaml:"documents"`
}

// ReplaceSummary is the replacement count for one document
type ReplaceSummary struct {
	Path  string `json:"path" yaml:"path"`
	Count int    `json:"count" yaml:"count"`
}

var (
	replaceCaseSensitive bool
	replaceAll           bool
	replaceDocument      string
)

// NewReplaceCommand creates the replace command
func NewReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <find> <replace>",
		Short: "Find and replace text",
		Long: `Replace every occurrence of a word or phrase. Formatting of the
surrounding text is kept. Each changed document gets one undo step.

By default the current document is searched; use --document to choose one
or --all for every document in the root folder.

Examples:
  # Fix a misspelling in the current document
  langotango replace "recieve" "receive"

  # Case-sensitive replacement across the manuscript
  langotango replace "Tokio" "Tokyo" --all --case-sensitive`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("search text cannot be empty")
			}
			if replaceAll && replaceDocument != "" {
				return fmt.Errorf("use either --all or --document, not both")
			}
			return validateProject(cmd, args)
		},
		RunE: runReplace,
	}

	cmd.Flags().BoolVarP(&replaceCaseSensitive, "case-sensitive", "c", false, "Match case exactly")
	cmd.Flags().BoolVar(&replaceAll, "all", false, "Replace in every document of the root folder")
	cmd.Flags().StringVarP(&replaceDocument, "document", "d", "", "Document to change (default: current)")

	return cmd
}

func runReplace(cmd *cobra.Command, args []string) error {
	find, replacement := args[0], args[1]

	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var docs []*workspace.Document
	if replaceAll {
		for _, d := range ws.Documents() {
			if ws.Root.Contains(d) {
				docs = append(docs, d)
			}
		}
	} else {
		doc, err := documentArg(ws, []string{replaceDocument})
		if err != nil {
			return err
		}
		docs = []*workspace.Document{doc}
	}

	result := ReplaceResult{Find: find, Replace: replacement}
	for _, doc := range docs {
		updated, n := doc.Content.ReplaceAll(find, replacement, replaceCaseSensitive)
		if n == 0 {
			continue
		}
		doc.Commit(updated)
		result.Total += n
		result.Replacements = append(result.Replacements, ReplaceSummary{Path: ws.PathOf(doc), Count: n})
	}

	if result.Total > 0 {
		if err := ctx.SaveWorkspace(); err != nil {
			return err
		}
	}

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, result)
	}

	if result.Total == 0 {
		cli.PrintInfo("No matches for '%s'", find)
		return nil
	}
	for _, r := range result.Replacements {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", r.Path, r.Count)
	}
	cli.PrintSuccess("Replaced %d occurrence(s) of '%s'", result.Total, find)
	return nil
}
