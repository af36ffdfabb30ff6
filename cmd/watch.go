package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cutlistlab/cabplan/internal/model"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project file and sync changes to the planning service",
	Long: `Watch the project file for writes (e.g. from an editor or another tool)
and push each change to the planning service. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if offline {
		return fmt.Errorf("watch syncs to the planning service; cannot watch offline")
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	if ws.store.Current() == nil {
		return fmt.Errorf("no project file at %s", ws.projectPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops a
	// watch on the file itself.
	dir := filepath.Dir(ws.projectPath)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(ws.projectPath)
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", ws.projectPath)

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

	ctx := context.Background()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			syncProjectFile(ctx, ws)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)

		case <-exit:
			fmt.Println("\nStopped")
			return nil
		}
	}
}

func syncProjectFile(ctx context.Context, ws *workspace) {
	raw, err := os.ReadFile(ws.projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read project: %v\n", err)
		return
	}
	var p model.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		// Editors often write partial files; skip and wait for the next
		// event.
		return
	}

	ws.store.Replace(&p)
	rev := ws.store.Revision()
	if err := ws.client.UpdateProject(ctx, &p); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	ws.store.Ack(rev)
	fmt.Printf("✓ Synced %d cabinet(s)\n", p.CabinetCount())
}
