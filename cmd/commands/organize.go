package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shokunin/langotango/internal/cli"
	"github.com/shokunin/langotango/pkg/workspace"
)

var (
	moveIndex int
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <item> <new-name>",
		Short: "Rename a document or folder",
		Long: `Rename a document, a folder or the root folder. Research and Trash keep
their names. An empty path ("") names the root folder.

Examples:
  langotango rename "Chapter 1" "Prologue"
  langotango rename "" "Mein Roman"`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateItemName("new", args[1]); err != nil {
				return err
			}
			return validateProject(cmd, args)
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	item, _, err := ws.Resolve(args[0])
	if err != nil {
		return friendlyError(err)
	}

	oldName := item.DisplayName()
	if err := ws.Rename(item, args[1]); err != nil {
		return friendlyError(err)
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Renamed %s '%s' to '%s'", itemKind(item), oldName, item.DisplayName())
	return nil
}

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <item> <folder>",
		Short: "Move a document or folder into another folder",
		Long: `Move a document or folder, with everything inside it, into another
folder. Documents keep their text and undo history.

Examples:
  # Move a chapter into a part
  langotango move "Chapter 3" "Part Two"

  # Move it to the top of the root folder
  langotango move "Part Two/Chapter 3" "" --index 0

  # Restore something from the trash
  langotango move "Trash/Chapter 3" ""`,
		Args:    cobra.ExactArgs(2),
		PreRunE: validateProject,
		RunE:    runMove,
	}

	cmd.Flags().IntVarP(&moveIndex, "index", "i", workspace.AtEnd, "Position in the destination folder (default: end)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	item, src, err := ws.Resolve(args[0])
	if err != nil {
		return friendlyError(err)
	}
	if src == nil {
		return fmt.Errorf("top-level folders cannot be moved")
	}
	dst, err := ws.ResolveFolder(args[1])
	if err != nil {
		return friendlyError(err)
	}

	if err := ws.Move(item, src, dst, moveIndex); err != nil {
		return friendlyError(err)
	}
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}

	cli.PrintSuccess("Moved '%s' to '%s'", item.DisplayName(), ws.PathOf(dst))
	return nil
}

// errAlreadyThere means the item already sits directly in the target folder
var errAlreadyThere = errors.New("already there")

// NewTrashCommand creates the trash command
func NewTrashCommand() *cobra.Command {
	return newSpecialMoveCommand("trash", "Trash", "Move a document or folder to the Trash",
		func(ws *workspace.Workspace, item workspace.Item, src *workspace.Folder) error {
			if src == ws.Trash {
				return errAlreadyThere
			}
			return ws.MoveToTrash(item, src)
		})
}

// NewResearchCommand creates the research command
func NewResearchCommand() *cobra.Command {
	return newSpecialMoveCommand("research", "Research", "Move a document or folder to Research",
		func(ws *workspace.Workspace, item workspace.Item, src *workspace.Folder) error {
			return ws.MoveToResearch(item, src)
		})
}

func newSpecialMoveCommand(name, folder, short string, move func(*workspace.Workspace, workspace.Item, *workspace.Folder) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <item>",
		Short: short,
		Long: fmt.Sprintf(`%s. Items in %s are left out of compiled
manuscripts but keep their text and undo history.

Examples:
  langotango %s "Old draft"`, short, folder, name),
		Args:    cobra.ExactArgs(1),
		PreRunE: validateProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, ws, err := loadProject(cmd)
			if err != nil {
				return err
			}
			item, src, err := ws.Resolve(args[0])
			if err != nil {
				return friendlyError(err)
			}
			if src == nil {
				return fmt.Errorf("top-level folders cannot be moved")
			}
			if err := move(ws, item, src); err != nil {
				if errors.Is(err, errAlreadyThere) {
					cli.PrintInfo("'%s' is already in the %s", item.DisplayName(), folder)
					return nil
				}
				return friendlyError(err)
			}
			if err := ctx.SaveWorkspace(); err != nil {
				return err
			}
			cli.PrintSuccess("Moved '%s' to %s", item.DisplayName(), folder)
			return nil
		},
	}
	return cmd
}

// NewEmptyTrashCommand creates the empty-trash command
func NewEmptyTrashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "empty-trash",
		Short: "Permanently delete everything in the Trash",
		Long: `Permanently delete everything in the Trash. This cannot be undone.

Examples:
  # Asks for confirmation
  langotango empty-trash

  # No questions
  langotango empty-trash --yes`,
		Args:    cobra.NoArgs,
		PreRunE: validateProject,
		RunE:    runEmptyTrash,
	}

	return cmd
}

func runEmptyTrash(cmd *cobra.Command, args []string) error {
	ctx, ws, err := loadProject(cmd)
	if err != nil {
		return err
	}
	if len(ws.Trash.Items) == 0 {
		cli.PrintInfo("The Trash is already empty")
		return nil
	}

	if ctx.LoadSettingsWithDefault().Project.ConfirmEmptyTrash {
		ok, err := cli.Confirm(fmt.Sprintf("Permanently delete %d item(s) (%d documents) from the Trash?",
			len(ws.Trash.Items), ws.Trash.DocumentCount()), false)
		if err != nil {
			return err
		}
		if !ok {
			cli.PrintInfo("Cancelled")
			return nil
		}
	}

	n := ws.EmptyTrash()
	if err := ctx.SaveWorkspace(); err != nil {
		return err
	}
	cli.PrintSuccess("Deleted %d item(s) from the Trash", n)
	return nil
}
