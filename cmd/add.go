package cmd

import (
	"context"
	"fmt"

	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/spf13/cobra"
)

var (
	addWidth     float64
	addHeight    float64
	addDepth     float64
	addThickness float64
	addShelves   int
	addDoors     int
	addQuantity  int
	addNoBack    bool
	addDraft     bool
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a cabinet to the project",
	Long: `Add a cabinet design to the project and sync it to the planning service.

The cabinet is described by its outer carcass dimensions in millimetres;
panels (sides, top, bottom, back, shelves, doors) are derived from them.

Examples:
  cabplan add base-600 --width 600 --height 720 --depth 580 --shelves 1 --doors 2
  cabplan add wall-800 --width 800 --height 400 --depth 320 --draft`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().Float64Var(&addWidth, "width", 600, "Outer width in mm")
	addCmd.Flags().Float64Var(&addHeight, "height", 720, "Outer height in mm")
	addCmd.Flags().Float64Var(&addDepth, "depth", 580, "Outer depth in mm")
	addCmd.Flags().Float64Var(&addThickness, "thickness", model.DefaultPanelThickness, "Panel thickness in mm")
	addCmd.Flags().IntVar(&addShelves, "shelves", 0, "Number of shelves")
	addCmd.Flags().IntVar(&addDoors, "doors", 0, "Number of doors")
	addCmd.Flags().IntVar(&addQuantity, "qty", 1, "How many of this cabinet to build")
	addCmd.Flags().BoolVar(&addNoBack, "no-back", false, "Omit the back panel")
	addCmd.Flags().BoolVar(&addDraft, "draft", false, "Keep as the in-progress draft instead of committing")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cab := cabinetFromFlags(args[0])

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var syncErr error
	if addDraft {
		syncErr = ws.editor.SetDraft(ctx, cab)
	} else {
		syncErr = ws.editor.AddCabinet(ctx, cab)
	}
	if err := ws.finish(syncErr); err != nil {
		return err
	}

	p := ws.store.Current()
	if addDraft {
		fmt.Printf("✓ Draft cabinet %q (%d cabinet(s) total)\n", cab.Name, p.CabinetCount())
	} else {
		fmt.Printf("✓ Added cabinet %q at index %d (%d cabinet(s) total)\n",
			cab.Name, len(p.Cabinets)-1, p.CabinetCount())
	}
	if p.Validation.HasErrors() {
		for _, msg := range p.Validation.Errors {
			fmt.Printf("  ✗ %s\n", msg)
		}
	}
	return nil
}

func cabinetFromFlags(name string) model.Cabinet {
	cab := model.NewCabinet(name, addWidth, addHeight, addDepth)
	cab.PanelThickness = addThickness
	cab.ShelfCount = addShelves
	cab.DoorCount = addDoors
	cab.Quantity = addQuantity
	cab.BackPanel = !addNoBack
	return cab
}
