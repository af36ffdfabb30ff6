package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/spf13/cobra"
)

var (
	setName      string
	setWidth     float64
	setHeight    float64
	setDepth     float64
	setThickness float64
	setShelves   int
	setDoors     int
	setQuantity  int
	setNoBack    bool
)

var setCmd = &cobra.Command{
	Use:   "set <index>",
	Short: "Edit the cabinet at an index",
	Long: `Replace fields of one cabinet, identified by its position in the project.
Only the flags you pass change; everything else is kept.

Examples:
  cabplan set 0 --shelves 3
  cabplan set 2 --width 450 --doors 1`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVar(&setName, "name", "", "Rename the cabinet")
	setCmd.Flags().Float64Var(&setWidth, "width", 0, "Outer width in mm")
	setCmd.Flags().Float64Var(&setHeight, "height", 0, "Outer height in mm")
	setCmd.Flags().Float64Var(&setDepth, "depth", 0, "Outer depth in mm")
	setCmd.Flags().Float64Var(&setThickness, "thickness", 0, "Panel thickness in mm")
	setCmd.Flags().IntVar(&setShelves, "shelves", -1, "Number of shelves")
	setCmd.Flags().IntVar(&setDoors, "doors", -1, "Number of doors")
	setCmd.Flags().IntVar(&setQuantity, "qty", 0, "How many of this cabinet to build")
	setCmd.Flags().BoolVar(&setNoBack, "no-back", false, "Omit the back panel")
}

func runSet(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	p := ws.store.Current()
	if p == nil || index < 0 || index >= len(p.Cabinets) {
		return fmt.Errorf("no cabinet at index %d", index)
	}

	cab := applySetFlags(cmd, p.Cabinets[index])

	syncErr := ws.editor.UpdateCabinet(context.Background(), index, cab)
	if err := ws.finish(syncErr); err != nil {
		return err
	}

	fmt.Printf("✓ Updated cabinet %d (%s)\n", index, cab.Name)
	if v := ws.store.Current().Validation; v.HasErrors() {
		for _, msg := range v.Errors {
			fmt.Printf("  ✗ %s\n", msg)
		}
	}
	return nil
}

// applySetFlags overlays only the flags that were passed onto the existing
// cabinet.
func applySetFlags(cmd *cobra.Command, cab model.Cabinet) model.Cabinet {
	if cmd.Flags().Changed("name") {
		cab.Name = setName
	}
	if cmd.Flags().Changed("width") {
		cab.Width = setWidth
	}
	if cmd.Flags().Changed("height") {
		cab.Height = setHeight
	}
	if cmd.Flags().Changed("depth") {
		cab.Depth = setDepth
	}
	if cmd.Flags().Changed("thickness") {
		cab.PanelThickness = setThickness
	}
	if cmd.Flags().Changed("shelves") {
		cab.ShelfCount = setShelves
	}
	if cmd.Flags().Changed("doors") {
		cab.DoorCount = setDoors
	}
	if cmd.Flags().Changed("qty") {
		cab.Quantity = setQuantity
	}
	if cmd.Flags().Changed("no-back") {
		cab.BackPanel = !setNoBack
	}
	return cab
}
