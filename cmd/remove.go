package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove the cabinet at an index",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var discardDraft bool

var draftCmd = &cobra.Command{
	Use:   "commit-draft",
	Short: "Commit the in-progress draft cabinet, or discard it with --discard",
	Args:  cobra.NoArgs,
	RunE:  runDraft,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().BoolVar(&discardDraft, "discard", false, "Discard the draft instead of committing it")
}

func runRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	syncErr := ws.editor.RemoveCabinet(context.Background(), index)
	if err := ws.finish(syncErr); err != nil {
		return err
	}

	fmt.Printf("✓ Removed cabinet %d (%d remaining)\n", index, ws.store.Current().CabinetCount())
	return nil
}

func runDraft(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var syncErr error
	if discardDraft {
		syncErr = ws.editor.DiscardDraft(ctx)
	} else {
		syncErr = ws.editor.CommitDraft(ctx)
	}
	if err := ws.finish(syncErr); err != nil {
		return err
	}

	if discardDraft {
		fmt.Println("✓ Draft discarded")
	} else {
		p := ws.store.Current()
		fmt.Printf("✓ Draft committed at index %d\n", len(p.Cabinets)-1)
	}
	return nil
}
