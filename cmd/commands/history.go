package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/history"
	"github.com/shokunin/langotango/pkg/utils"
)

// HistoryOutput represents the output structure for history command
type HistoryOutput struct {
	Document string          `json:"document" yaml:"document"`
	Limit    int             `json:"limit" yaml:"limit"`
	Undo     []HistoryRecord `json:"undo" yaml:"undo"`
	Redo     []HistoryRecord `json:"redo" yaml:"redo"`
}

// HistoryRecord summarizes one snapshot
type HistoryRecord struct {
	Index   int    `json:"index" yaml:"index"`
	Words   int    `json:"words" yaml:"words"`
	Preview string `json:"preview" yaml:"preview"`
}

var (
	historyLimit int
)

// NewUndoCommand creates the undo command
func NewUndoCommand() *cobra.Command {
	return newHistoryStepCommand("undo", "Undo the last change to a document", true)
}

// NewRedoCommand creates the redo command
func NewRedoCommand() *cobra.Command {
	return newHistoryStepCommand("redo", "Redo the last undone change", false)
}

func newHistoryStepCommand(name, short string, undo bool) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   name + " [document]",
		Short: short,
		Long: fmt.Sprintf(`%s. Without an argument the current document is used.

Each document keeps up to %d snapshots. Writing new text after an undo
discards the redo history.

Examples:
  langotango %s
  langotango %s "Chapter 1" --steps 3`, short, history.MaxStates, name, name),
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, ws, err := loadProject(cmd)
			if err != nil {
				return err
			}
			doc, err := documentArg(ws, args)
			if err != nil {
				return err
			}

			applied := 0
			for i := 0; i < max(steps, 1); i++ {
				var stepped bool
				if undo {
					stepped = doc.Undo()
				} else {
					stepped = doc.Redo()
				}
				if !stepped {
					break
				}
				applied++
			}

			if applied == 0 {
				cli.PrintInfo("Nothing to %s in '%s'", name, doc.DisplayName())
				return nil
			}
			if err := ctx.SaveWorkspace(); err != nil {
				return err
			}
			cli.PrintSuccess("%s: %d step(s) in '%s' (%s words)", name, applied, doc.DisplayName(), utils.FormatCount(doc.WordCount()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of steps")

	return cmd
}

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [document]",
		Short: "Show a document's undo and redo snapshots",
		Long: `Show the snapshots kept for a document, newest first. The first undo
entry is the current text.

Examples:
  langotango history
  langotango history "Chapter 1" -o json`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateProject,
		RunE:    runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Maximum snapshots to show per stack (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	doc, err := documentArg(ws, args)
	if err != nil {
		return err
	}

	var undoStack, redoStack []content.Content
	if doc.History != nil {
		undoStack = doc.History.UndoStack()
		redoStack = doc.History.RedoStack()
	}

	out := HistoryOutput{
		Document: ws.PathOf(doc),
		Limit:    history.MaxStates,
		Undo:     summarizeStack(undoStack, historyLimit),
		Redo:     summarizeStack(redoStack, historyLimit),
	}

	switch f := outputFormat(cmd); f {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), f, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "History for %s (%d undo, %d redo, limit %d)\n\n", out.Document, len(undoStack), len(redoStack), out.Limit)
	table := cli.NewTableFormatter(w)
	table.Header("STACK", "#", "WORDS", "TEXT")
	for _, r := range out.Undo {
		marker := "undo"
		if r.Index == 0 {
			marker = "current"
		}
		table.Row(marker, fmt.Sprint(r.Index), utils.FormatCount(r.Words), r.Preview)
	}
	for _, r := range out.Redo {
		table.Row("redo", fmt.Sprint(r.Index), utils.FormatCount(r.Words), r.Preview)
	}
	table.Flush()
	return nil
}

// summarizeStack lists snapshots newest first
func summarizeStack(stack []content.Content, limit int) []HistoryRecord {
	records := make([]HistoryRecord, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		if limit > 0 && len(records) == limit {
			break
		}
		text := stack[i].PlainText()
		records = append(records, HistoryRecord{
			Index:   len(stack) - 1 - i,
			Words:   utils.CountWords(text),
			Preview: cli.TruncateString(oneLine(text), 50),
		})
	}
	return records
}
