package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
)

var (
	cutlistJSON bool
	cutlistToon bool
)

var cutlistCmd = &cobra.Command{
	Use:   "cutlist",
	Short: "Print the merged cut list for the project",
	Long: `Expand every cabinet into panels and merge identical panels into
cut-list rows, largest first.

Examples:
  cabplan cutlist
  cabplan cutlist --json
  cabplan cutlist --toon`,
	RunE: runCutlist,
}

func init() {
	rootCmd.AddCommand(cutlistCmd)

	cutlistCmd.Flags().BoolVar(&cutlistJSON, "json", false, "Output as JSON")
	cutlistCmd.Flags().BoolVar(&cutlistToon, "toon", false, "Output in LLM-friendly toon format")
}

func runCutlist(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	p := ws.store.Current()
	if p.CabinetCount() == 0 {
		fmt.Println("No cabinets yet. Add one with: cabplan add <name>")
		return nil
	}

	items := p.CutList()

	if cutlistJSON {
		output, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if cutlistToon {
		output, err := gotoon.Encode(items)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Cut list (%d row(s))\n\n", len(items))
	fmt.Printf("  %-8s %9s %9s %6s %4s  %s\n", "ROLE", "WIDTH", "LENGTH", "THICK", "QTY", "CABINETS")
	for _, item := range items {
		fmt.Printf("  %-8s %9.1f %9.1f %6.1f %4d  %v\n",
			item.Role, item.Width, item.Length, item.Thickness, item.Quantity, item.Cabinets)
	}
	return nil
}
