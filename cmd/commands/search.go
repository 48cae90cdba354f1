package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
)

// SearchOutput represents the output structure for search command
type SearchOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Folder  string `json:"folder" yaml:"folder"`
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the text of every document",
		Long: `Search every document, including Research and Trash, for a word or
phrase. Matching ignores case. Each document is listed once with an
excerpt around its first match.

Examples:
  langotango search "Kirschblüte"
  langotango search "mañana" -o json`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: validateProject,
		RunE:    runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query cannot be empty")
	}

	_, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	results := ws.Search(query)
	out := SearchOutput{Query: query, Count: len(results), Results: []SearchItemOutput{}}
	for _, r := range results {
		out.Results = append(out.Results, SearchItemOutput{
			Name:    r.Document.DisplayName(),
			Path:    r.Path,
			Folder:  r.Parent.Name,
			Excerpt: r.Excerpt,
		})
	}

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, out)
	}

	if out.Count == 0 {
		cli.PrintInfo("No documents contain '%s'", query)
		return nil
	}
	w := cmd.OutOrStdout()
	for _, r := range out.Results {
		fmt.Fprintf(w, "%s\n    %s\n", r.Path, oneLine(r.Excerpt))
	}
	fmt.Fprintf(w, "\n%d document(s) found\n", out.Count)
	return nil
}
