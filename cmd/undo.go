package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the project to the previous snapshot",
	RunE:  runUndo,
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Re-apply the last undone change",
	RunE:  runRedo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if !ws.history.CanUndo.Get() {
		fmt.Println("Nothing to undo")
		return nil
	}

	done, syncErr := ws.editor.Undo(context.Background())
	if err := ws.finish(syncErr); err != nil {
		return err
	}
	if done {
		undoDepth, redoDepth := ws.history.Depths()
		fmt.Printf("✓ Undone (%d undo, %d redo step(s) left)\n", undoDepth, redoDepth)
	}
	return nil
}

func runRedo(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if !ws.history.CanRedo.Get() {
		fmt.Println("Nothing to redo")
		return nil
	}

	done, syncErr := ws.editor.Redo(context.Background())
	if err := ws.finish(syncErr); err != nil {
		return err
	}
	if done {
		undoDepth, redoDepth := ws.history.Depths()
		fmt.Printf("✓ Redone (%d undo, %d redo step(s) left)\n", undoDepth, redoDepth)
	}
	return nil
}
