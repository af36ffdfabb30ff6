package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/cutlistlab/cabplan/internal/config"
	"github.com/cutlistlab/cabplan/internal/session"
	"github.com/spf13/cobra"
)

var (
	nestJSON bool
	nestToon bool
)

var nestCmd = &cobra.Command{
	Use:   "nest",
	Short: "Nest the project's panels onto stock sheets",
	Long: `Push the current document to the planning service and run its nesting
optimizer. The result is cached on the project.

Examples:
  cabplan nest
  cabplan nest --json`,
	RunE: runNest,
}

func init() {
	rootCmd.AddCommand(nestCmd)

	nestCmd.Flags().BoolVar(&nestJSON, "json", false, "Output as JSON")
	nestCmd.Flags().BoolVar(&nestToon, "toon", false, "Output in LLM-friendly toon format")
}

func runNest(cmd *cobra.Command, args []string) error {
	if offline {
		return fmt.Errorf("nesting runs on the planning service; cannot nest offline")
	}

	url := serverURL
	if url == "" {
		url = config.GetServerURL()
	}
	if !session.IsAvailable(url) {
		return fmt.Errorf("planning service not reachable at %s (try: cabplan serve)", url)
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	result, nestErr := ws.editor.Nest(context.Background())
	if err := ws.finish(nestErr); err != nil {
		return err
	}
	if result == nil {
		return nestErr
	}

	if nestJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if nestToon {
		output, err := gotoon.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Nested onto %d sheet(s), %.1f%% utilization\n", len(result.Sheets), result.Utilization*100)
	for i, sheet := range result.Sheets {
		fmt.Printf("  sheet %d: %s (%.0f x %.0f), %d panel(s), %.1f%% used\n",
			i+1, sheet.Stock.Name, sheet.Stock.Width, sheet.Stock.Length,
			len(sheet.Placements), sheet.Utilization*100)
	}
	if len(result.Unplaced) > 0 {
		fmt.Printf("  ✗ %d panel(s) did not fit any stock:\n", len(result.Unplaced))
		for _, part := range result.Unplaced {
			fmt.Printf("    %s %s (%.0f x %.0f)\n", part.Cabinet, part.Role, part.Width, part.Length)
		}
	}
	return nil
}
