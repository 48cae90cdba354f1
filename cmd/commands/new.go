package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/content"
	"github.com/shokunin/langotango/pkg/workspace"
)

var (
	newText string
	newFile string
	newOpen bool
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <document|folder> <path>",
		Short: "Create a document or folder",
		Long: `Create a document or folder. The last element of the path is the new
item's name; the rest names the parent folder. Paths are relative to the
root folder unless they start with Research or Trash.

Examples:
  # Create a document in the root folder
  langotango new document "Chapter 1"

  # Create a folder, then a document inside it
  langotango new folder "Part One"
  langotango new document "Part One/Chapter 2" --text "Es war einmal..."

  # Create a research note from a Markdown file
  langotango new document "Research/Vocabulary" --file vocab.md`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"document", "folder"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "document", "doc", "folder":
			default:
				return fmt.Errorf("invalid item type: %s (must be: document or folder)", args[0])
			}
			if newFile != "" {
				if err := cli.ValidateFilePath(newFile); err != nil {
					return err
				}
			}
			return validateProject(cmd, args)
		},
		RunE: runNew,
	}

	cmd.Flags().StringVar(&newText, "text", "", "Initial document text")
	cmd.Flags().StringVarP(&newFile, "file", "f", "", "Import initial content from a .txt, .md, .html or .docx file")
	cmd.Flags().BoolVar(&newOpen, "open", false, "Make the new document the current one")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	parentPath, name := splitParent(path)
	if err := cli.ValidateItemName(kind, name); err != nil {
		return err
	}

	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}

	parent, err := ws.ResolveFolder(parentPath)
	if err != nil {
		return friendlyError(err)
	}

	switch kind {
	case "folder":
		if _, err := ws.CreateFolder(parent, name); err != nil {
			return friendlyError(err)
		}
	default:
		doc, err := ws.CreateDocument(parent, name)
		if err != nil {
			return friendlyError(err)
		}
		if err := fillNewDocument(doc); err != nil {
			return err
		}
		if newOpen || ws.Current == nil {
			if err := ws.Open(doc); err != nil {
				return err
			}
		}
		kind = "document"
	}

	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Created %s '%s' in '%s'", kind, name, ws.PathOf(parent))
	return nil
}

func fillNewDocument(doc *workspace.Document) error {
	var body content.Content
	switch {
	case newFile != "":
		imported, err := cli.ReadContentFile(newFile)
		if err != nil {
			return err
		}
		body = imported
	case newText != "":
		body = content.FromPlainText(newText)
	default:
		return nil
	}
	doc.Commit(body)
	return nil
}

// splitParent splits "a/b/c" into "a/b" and "c"
func splitParent(path string) (string, string) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", strings.TrimSpace(path)
	}
	return path[:i], strings.TrimSpace(path[i+1:])
}
