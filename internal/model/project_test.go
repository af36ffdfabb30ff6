package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCabinetCount(t *testing.T) {
	var nilProject *Project
	assert.Equal(t, 0, nilProject.CabinetCount(), "nil project has no cabinets")

	p := NewProject("kitchen")
	assert.Equal(t, 0, p.CabinetCount())

	p.Cabinets = append(p.Cabinets, NewCabinet("base", 600, 720, 580))
	assert.Equal(t, 1, p.CabinetCount())

	draft := NewCabinet("wall", 800, 400, 320)
	p.Draft = &draft
	assert.Equal(t, 2, p.CabinetCount(), "a draft counts as one cabinet")

	p.Draft = nil
	assert.Equal(t, 1, p.CabinetCount())
}

func TestProjectPartsIncludeDraft(t *testing.T) {
	p := NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, NewCabinet("base", 600, 720, 580))
	committed := p.PartCount()

	draft := NewCabinet("wall", 800, 400, 320)
	p.Draft = &draft

	assert.Greater(t, p.PartCount(), committed, "draft panels appear in the expansion")
}

func TestProjectClone(t *testing.T) {
	p := NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, NewCabinet("base", 600, 720, 580))

	clone := p.Clone()
	require.NotNil(t, clone)
	clone.Cabinets[0].Width = 900
	clone.Name = "other"

	assert.Equal(t, 600.0, p.Cabinets[0].Width, "clone must not share cabinet storage")
	assert.Equal(t, "kitchen", p.Name)

	var nilProject *Project
	assert.Nil(t, nilProject.Clone())
}

func TestValidateCatchesBadDimensions(t *testing.T) {
	p := NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, NewCabinet("broken", 0, 720, 580))

	result := p.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Errors[0], "dimensions must be positive")
}

func TestValidateCatchesNarrowCabinet(t *testing.T) {
	p := NewProject("kitchen")
	// 30mm wide with 18mm panels leaves negative interior width.
	p.Cabinets = append(p.Cabinets, NewCabinet("sliver", 30, 720, 580))

	result := p.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Errors[0], "no room between the sides")
}

func TestValidateCatchesShelfOverflow(t *testing.T) {
	p := NewProject("kitchen")
	cab := NewCabinet("shelfy", 600, 100, 580)
	cab.ShelfCount = 10
	p.Cabinets = append(p.Cabinets, cab)

	result := p.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Errors[0], "too many shelves")
}

func TestValidateCatchesOversizedPanels(t *testing.T) {
	p := &Project{
		Name:     "small shop",
		Cabinets: []Cabinet{NewCabinet("base", 600, 720, 580)},
		Stock:    []StockSheet{NewStockSheet("offcut", 300, 300, 5)},
	}

	result := p.Validate()
	require.True(t, result.HasErrors())
	assert.Contains(t, result.Errors[0], "does not fit any stock sheet")
}

func TestValidateCleanProject(t *testing.T) {
	p := NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, NewCabinet("base", 600, 720, 580))

	result := p.Validate()
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Warnings)
}

func TestValidateWarnsWithoutStock(t *testing.T) {
	p := &Project{Name: "no stock", Cabinets: []Cabinet{NewCabinet("base", 600, 720, 580)}}

	result := p.Validate()
	assert.False(t, result.HasErrors())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no stock sheets")
}

func TestHasErrorsNilSafe(t *testing.T) {
	var v *ValidationResult
	assert.False(t, v.HasErrors())
}
