package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCabinetParts_BasicCarcass(t *testing.T) {
	cab := NewCabinet("base-600", 600, 720, 580)
	cab.BackPanel = false

	parts := cab.Parts()

	// Two sides, top, bottom.
	require.Len(t, parts, 3)
	assert.Equal(t, RoleSide, parts[0].Role)
	assert.Equal(t, 2, parts[0].Quantity)
	assert.Equal(t, 720.0, parts[0].Length, "sides run full height")
	assert.Equal(t, 580.0, parts[0].Width, "sides are as deep as the cabinet")

	top := parts[1]
	assert.Equal(t, RoleTop, top.Role)
	assert.Equal(t, 600-2*DefaultPanelThickness, top.Width, "top sits between the sides")
}

func TestCabinetParts_ShelvesDoorsBack(t *testing.T) {
	cab := NewCabinet("wall-800", 800, 400, 320)
	cab.ShelfCount = 2
	cab.DoorCount = 2

	parts := cab.Parts()
	byRole := make(map[PartRole]Part)
	for _, p := range parts {
		byRole[p.Role] = p
	}

	back, ok := byRole[RoleBack]
	require.True(t, ok, "back panel expected by default")
	assert.Equal(t, DefaultBackThickness, back.Thickness)
	assert.Equal(t, 800.0, back.Width)

	shelf, ok := byRole[RoleShelf]
	require.True(t, ok)
	assert.Equal(t, 2, shelf.Quantity)
	assert.Equal(t, 320-DefaultBackThickness, shelf.Length, "shelves are inset for the back")

	door, ok := byRole[RoleDoor]
	require.True(t, ok)
	assert.Equal(t, 2, door.Quantity)
	assert.Equal(t, 800.0/2-DoorGap, door.Width)
}

func TestCabinetParts_QuantityMultiplies(t *testing.T) {
	cab := NewCabinet("run", 600, 720, 580)
	cab.Quantity = 3
	cab.ShelfCount = 1

	// 2 sides + top + bottom + back + shelf = 6 panels per cabinet.
	assert.Equal(t, 6*3, cab.PartCount())
}

func TestBuildCutList_MergesIdenticalPanels(t *testing.T) {
	a := NewCabinet("a", 600, 720, 580)
	b := NewCabinet("b", 600, 720, 580)

	items := BuildCutList(append(a.Parts(), b.Parts()...))

	for _, item := range items {
		if item.Role == RoleSide {
			assert.Equal(t, 4, item.Quantity, "sides of identical cabinets merge")
			assert.ElementsMatch(t, []string{"a", "b"}, item.Cabinets)
		}
	}
}

func TestBuildCutList_SortedLargestFirst(t *testing.T) {
	cab := NewCabinet("c", 600, 720, 580)
	cab.ShelfCount = 1

	items := BuildCutList(cab.Parts())
	require.NotEmpty(t, items)
	for i := 1; i < len(items); i++ {
		prev := items[i-1].Width * items[i-1].Length
		cur := items[i].Width * items[i].Length
		assert.GreaterOrEqual(t, prev, cur, "cut list must be sorted by area")
	}
}
