package nesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutlistlab/cabplan/internal/model"
)

func fullSheets(qty int) []model.StockSheet {
	return []model.StockSheet{
		model.NewStockSheet("full", model.DefaultSheetWidth, model.DefaultSheetLength, qty),
	}
}

func TestNestSinglePart(t *testing.T) {
	parts := []model.Part{
		{Cabinet: "base", Role: model.RoleSide, Width: 580, Length: 720, Thickness: 18, Quantity: 1},
	}

	result := Nest(parts, fullSheets(5))

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.Empty(t, result.Unplaced)

	placed := result.Sheets[0].Placements[0]
	assert.Equal(t, 0.0, placed.X)
	assert.Equal(t, 0.0, placed.Y)
	assert.InDelta(t, 580*720/(model.DefaultSheetWidth*model.DefaultSheetLength), result.Utilization, 1e-9)
}

func TestNestExpandsQuantities(t *testing.T) {
	parts := []model.Part{
		{Cabinet: "base", Role: model.RoleSide, Width: 580, Length: 720, Thickness: 18, Quantity: 4},
	}

	result := Nest(parts, fullSheets(5))

	placements := 0
	for _, s := range result.Sheets {
		placements += len(s.Placements)
	}
	assert.Equal(t, 4, placements)
	assert.Empty(t, result.Unplaced)
}

func TestNestFillsSheetBeforeOpeningAnother(t *testing.T) {
	// Two 600x1200 panels share one full sheet comfortably.
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleSide, Width: 600, Length: 1200, Thickness: 18, Quantity: 2},
	}

	result := Nest(parts, fullSheets(5))

	require.Len(t, result.Sheets, 1, "both panels fit one sheet")
	assert.Len(t, result.Sheets[0].Placements, 2)
}

func TestNestPrefersSmallestAdequateStock(t *testing.T) {
	stock := []model.StockSheet{
		model.NewStockSheet("full", model.DefaultSheetWidth, model.DefaultSheetLength, 5),
		model.NewStockSheet("half", 1220, 1220, 5),
	}
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleShelf, Width: 500, Length: 500, Thickness: 18, Quantity: 1},
	}

	result := Nest(parts, stock)

	require.Len(t, result.Sheets, 1)
	assert.Equal(t, "half", result.Sheets[0].Stock.Name)
}

func TestNestRotatesToFit(t *testing.T) {
	// 1400 wide only fits the 1220mm sheet width after rotation.
	stock := fullSheets(1)
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleBack, Width: 1400, Length: 800, Thickness: 3, Quantity: 1},
	}

	result := Nest(parts, stock)

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.True(t, result.Sheets[0].Placements[0].Rotated)
	assert.Empty(t, result.Unplaced)
}

func TestNestReportsOversizedParts(t *testing.T) {
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleBack, Width: 3000, Length: 3000, Thickness: 3, Quantity: 1},
		{Cabinet: "a", Role: model.RoleShelf, Width: 500, Length: 500, Thickness: 18, Quantity: 1},
	}

	result := Nest(parts, fullSheets(5))

	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, model.RoleBack, result.Unplaced[0].Role)
	require.Len(t, result.Sheets, 1, "the placeable part still nests")
}

func TestNestRunsOutOfStock(t *testing.T) {
	// Each panel consumes a whole sheet; only one sheet is on hand.
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleBack, Width: 1220, Length: 2440, Thickness: 3, Quantity: 2},
	}

	result := Nest(parts, fullSheets(1))

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Unplaced, 1)
}

func TestNestExactFit(t *testing.T) {
	// A panel exactly the sheet size must place; the kerf applies between
	// panels, not at the edges.
	parts := []model.Part{
		{Cabinet: "a", Role: model.RoleBack, Width: 1220, Length: 2440, Thickness: 3, Quantity: 1},
	}

	result := Nest(parts, fullSheets(1))

	require.Len(t, result.Sheets, 1)
	assert.Empty(t, result.Unplaced)
	assert.InDelta(t, 1.0, result.Sheets[0].Utilization, 1e-9)
}

func TestNestEmptyInput(t *testing.T) {
	result := Nest(nil, fullSheets(5))

	assert.Empty(t, result.Sheets)
	assert.Empty(t, result.Unplaced)
	assert.Zero(t, result.Utilization)
}

func TestNestPlacementsStayOnSheet(t *testing.T) {
	cab := model.NewCabinet("base", 600, 720, 580)
	cab.ShelfCount = 2
	cab.DoorCount = 2

	result := Nest(cab.Parts(), fullSheets(10))

	require.Empty(t, result.Unplaced)
	for _, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			w, l := p.Part.Width, p.Part.Length
			if p.Rotated {
				w, l = l, w
			}
			assert.LessOrEqual(t, p.X+w, sheet.Stock.Width, "panel overflows sheet width")
			assert.LessOrEqual(t, p.Y+l, sheet.Stock.Length, "panel overflows sheet length")
		}
	}
}
