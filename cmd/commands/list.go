package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/utils"
	"github.com/shokunin/langotango/pkg/workspace"
)

// TreeNode represents one item in the list output
type TreeNode struct {
	Name     string     `json:"name" yaml:"name"`
	Type     string     `json:"type" yaml:"type"`
	Path     string     `json:"path" yaml:"path"`
	Words    int        `json:"words" yaml:"words"`
	Current  bool       `json:"current,omitempty" yaml:"current,omitempty"`
	Modified string     `json:"modified,omitempty" yaml:"modified,omitempty"`
	Items    []TreeNode `json:"items,omitempty" yaml:"items,omitempty"`
}

var (
	listRootOnly bool
	listDates    bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [folder]",
		Short: "Show the project tree",
		Long: `Show the folders and documents of the project with word counts.

The current document is marked with *. Research and Trash are listed after
the root folder unless --root-only is given.

Examples:
  # Show everything
  langotango list

  # Show one folder
  langotango list "Part One"

  # Machine-readable tree
  langotango list -o json`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateProject,
		RunE:    runList,
	}

	cmd.Flags().BoolVar(&listRootOnly, "root-only", false, "Hide the Research and Trash folders")
	cmd.Flags().BoolVar(&listDates, "dates", false, "Show modification times")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var folders []*workspace.Folder
	if len(args) > 0 {
		f, err := ws.ResolveFolder(args[0])
		if err != nil {
			return friendlyError(err)
		}
		folders = []*workspace.Folder{f}
	} else if listRootOnly {
		folders = []*workspace.Folder{ws.Root}
	} else {
		folders = ws.Folders()
	}

	nodes := make([]TreeNode, 0, len(folders))
	for _, f := range folders {
		nodes = append(nodes, buildTree(ws, f))
	}

	format := outputFormat(cmd)
	switch format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, nodes)
	default:
		for _, node := range nodes {
			printTree(cmd.OutOrStdout(), node, "", true, true)
		}
		return nil
	}
}

func buildTree(ws *workspace.Workspace, item workspace.Item) TreeNode {
	node := TreeNode{
		Name: item.DisplayName(),
		Type: itemKind(item),
		Path: ws.PathOf(item),
	}
	switch v := item.(type) {
	case *workspace.Document:
		node.Words = v.WordCount()
		node.Current = v == ws.Current
		node.Modified = v.Modified.Format("2006-01-02 15:04")
	case *workspace.Folder:
		node.Words = v.WordCount()
		node.Modified = v.Modified.Format("2006-01-02 15:04")
		for _, child := range v.Items {
			node.Items = append(node.Items, buildTree(ws, child))
		}
	}
	return node
}

func printTree(w io.Writer, node TreeNode, prefix string, last, top bool) {
	var line strings.Builder
	if !top {
		line.WriteString(prefix)
		if last {
			line.WriteString("└── ")
		} else {
			line.WriteString("├── ")
		}
	}
	line.WriteString(node.Name)
	if node.Type == "folder" {
		line.WriteString("/")
	}
	line.WriteString(fmt.Sprintf("  (%s words)", utils.FormatCount(node.Words)))
	if listDates && node.Modified != "" {
		line.WriteString("  " + node.Modified)
	}
	if node.Current {
		line.WriteString("  *")
	}
	fmt.Fprintln(w, line.String())

	childPrefix := prefix
	if !top {
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range node.Items {
		printTree(w, child, childPrefix, i == len(node.Items)-1, false)
	}
}
