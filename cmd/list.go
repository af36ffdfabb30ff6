package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cabinets in the project",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	p := ws.store.Current()
	if p.CabinetCount() == 0 {
		fmt.Println("No cabinets yet. Add one with: cabplan add <name>")
		return nil
	}

	fmt.Printf("%d cabinet(s), %d panel(s)\n\n", ws.store.CabinetCount.Get(), ws.store.PartCount.Get())
	for i, c := range p.Cabinets {
		fmt.Printf("  [%d] %s\n", i, c.Name)
		fmt.Printf("      %.0f x %.0f x %.0f mm, %d shelf(s), %d door(s), qty %d\n",
			c.Width, c.Height, c.Depth, c.ShelfCount, c.DoorCount, c.Quantity)
	}
	if p.Draft != nil {
		fmt.Printf("  [draft] %s (%.0f x %.0f x %.0f mm)\n",
			p.Draft.Name, p.Draft.Width, p.Draft.Height, p.Draft.Depth)
	}

	if ws.store.HasValidationErrors.Get() {
		fmt.Printf("\n%d validation error(s):\n", len(p.Validation.Errors))
		for _, msg := range p.Validation.Errors {
			fmt.Printf("  ✗ %s\n", msg)
		}
	}
	if ws.store.Dirty.Get() {
		fmt.Println("\nLocal changes not yet confirmed by the planning service.")
	}
	return nil
}
