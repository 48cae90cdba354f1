package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/utils"
	"github.com/shokunin/langotango/pkg/workspace"
)

// StatsOutput represents the output structure for stats command
type StatsOutput struct {
	Project         string `json:"project" yaml:"project"`
	FileSize        string `json:"file_size" yaml:"file_size"`
	CurrentDocument string `json:"current_document,omitempty" yaml:"current_document,omitempty"`
	CurrentWords    int    `json:"current_words" yaml:"current_words"`
	TotalWords      int    `json:"total_words" yaml:"total_words"`
	Characters      int    `json:"characters" yaml:"characters"`
	Documents       int    `json:"documents" yaml:"documents"`
	Folders         int    `json:"folders" yaml:"folders"`
	ResearchItems   int    `json:"research_documents" yaml:"research_documents"`
	TrashItems      int    `json:"trash_documents" yaml:"trash_documents"`
	ExcerptTokens   int    `json:"tutor_excerpt_tokens" yaml:"tutor_excerpt_tokens"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show word counts for the project",
		Long: `Show word counts for the current document and the whole manuscript.
The total counts only the root folder; Research and Trash are listed
separately.

Examples:
  langotango stats
  langotango stats -o yaml`,
		Args:    cobra.NoArgs,
		PreRunE: validateProject,
		RunE:    runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	out := StatsOutput{
		Project:       ctx.ProjectPath,
		TotalWords:    ws.WordCount(),
		Documents:     ws.Root.DocumentCount(),
		ResearchItems: ws.Research.DocumentCount(),
		TrashItems:    ws.Trash.DocumentCount(),
	}
	if info, err := os.Stat(ctx.ProjectPath); err == nil {
		out.FileSize = cli.FormatBytes(info.Size())
	}

	_ = ws.Walk(func(item workspace.Item, parent *workspace.Folder, depth int) error {
		if f, ok := item.(*workspace.Folder); ok && ws.Root.Contains(f) {
			out.Folders++
		}
		if d, ok := item.(*workspace.Document); ok && ws.Root.Contains(d) {
			out.Characters += utils.CountCharacters(d.PlainText())
		}
		return nil
	})

	if doc := ws.Current; doc != nil {
		out.CurrentDocument = ws.PathOf(doc)
		out.CurrentWords = doc.WordCount()
		excerpt := utils.TailRunes(doc.PlainText(), settings.Tutor.ExcerptLength)
		out.ExcerptTokens = utils.EstimateTokens(excerpt)
	}

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Current Document: %s words | Total Project: %s words\n\n",
		utils.FormatCount(out.CurrentWords), utils.FormatCount(out.TotalWords))

	table := cli.NewTableFormatter(w)
	table.Header("", "")
	table.Row("Project", fmt.Sprintf("%s (%s)", out.Project, out.FileSize))
	if out.CurrentDocument != "" {
		table.Row("Current document", out.CurrentDocument)
		table.Row("Tutor excerpt", utils.FormatTokenCount(out.ExcerptTokens))
	}
	table.Row("Documents", utils.FormatCount(out.Documents))
	table.Row("Folders", utils.FormatCount(out.Folders))
	table.Row("Characters", utils.FormatCount(out.Characters))
	table.Row("Research documents", utils.FormatCount(out.ResearchItems))
	table.Row("Trash documents", utils.FormatCount(out.TrashItems))
	table.Flush()
	return nil
}
