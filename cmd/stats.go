package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/spf13/cobra"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project statistics",
	Long: `Display statistics about the project including:
  - Cabinet and panel counts
  - Panels by role
  - Total panel area and estimated sheet usage
  - Validation and sync state

Examples:
  cabplan stats
  cabplan stats --json
  cabplan stats --toon`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type projectStats struct {
	Cabinets         int            `json:"cabinets"`
	HasDraft         bool           `json:"has_draft"`
	Panels           int            `json:"panels"`
	PanelsByRole     map[string]int `json:"panels_by_role"`
	CutListRows      int            `json:"cut_list_rows"`
	TotalAreaM2      float64        `json:"total_area_m2"`
	EstimatedSheets  int            `json:"estimated_sheets"`
	NestedSheets     int            `json:"nested_sheets,omitempty"`
	NestUtilization  float64        `json:"nest_utilization,omitempty"`
	ValidationErrors int            `json:"validation_errors"`
	Dirty            bool           `json:"dirty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	p := ws.store.Current()
	if p.CabinetCount() == 0 {
		fmt.Println("No cabinets yet. Add one with: cabplan add <name>")
		return nil
	}

	stats := collectStats(ws)

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Project Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Cabinets:   %d", stats.Cabinets)
	if stats.HasDraft {
		fmt.Print("  (includes draft)")
	}
	fmt.Println()
	fmt.Printf("Panels:     %d in %d cut-list row(s)\n", stats.Panels, stats.CutListRows)
	fmt.Printf("Area:       %.2f m²  (~%d full sheet(s))\n", stats.TotalAreaM2, stats.EstimatedSheets)
	if stats.NestedSheets > 0 {
		fmt.Printf("Nested:     %d sheet(s), %.1f%% utilization\n", stats.NestedSheets, stats.NestUtilization*100)
	}
	fmt.Println()

	fmt.Println("By Role:")
	roles := make([]string, 0, len(stats.PanelsByRole))
	for role := range stats.PanelsByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Printf("  %-8s %4d\n", role, stats.PanelsByRole[role])
	}

	if stats.ValidationErrors > 0 {
		fmt.Printf("\n✗ %d validation error(s) — run: cabplan list\n", stats.ValidationErrors)
	}
	if stats.Dirty {
		fmt.Println("\nLocal changes not yet confirmed by the planning service.")
	}
	return nil
}

func collectStats(ws *workspace) *projectStats {
	p := ws.store.Current()

	stats := &projectStats{
		Cabinets:     p.CabinetCount(),
		HasDraft:     p.Draft != nil,
		Panels:       ws.store.PartCount.Get(),
		PanelsByRole: make(map[string]int),
		Dirty:        ws.store.Dirty.Get(),
	}

	var areaMM2 float64
	for _, part := range p.Parts() {
		stats.PanelsByRole[string(part.Role)] += part.Quantity
		areaMM2 += part.Area() * float64(part.Quantity)
	}
	stats.TotalAreaM2 = areaMM2 / 1e6
	stats.CutListRows = len(p.CutList())

	sheetArea := model.DefaultSheetWidth * model.DefaultSheetLength
	stats.EstimatedSheets = int(areaMM2/sheetArea) + 1

	if p.Nesting != nil {
		stats.NestedSheets = len(p.Nesting.Sheets)
		stats.NestUtilization = p.Nesting.Utilization
	}
	if p.Validation != nil {
		stats.ValidationErrors = len(p.Validation.Errors)
	}
	return stats
}
