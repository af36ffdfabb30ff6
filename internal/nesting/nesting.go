// Package nesting implements the dev server's stand-in optimizer: a
// first-fit-decreasing shelf packer. The production optimizer lives behind
// the planning API; this one only has to produce valid, plausible layouts.
package nesting

import (
	"sort"

	"github.com/cutlistlab/cabplan/internal/model"
)

// Kerf is the blade width left between adjacent panels.
const Kerf = 3.0

type shelf struct {
	y      float64
	height float64
	cursor float64
}

type openSheet struct {
	stock   model.StockSheet
	shelves []shelf
	top     float64
	placed  []model.Placement
	used    float64
}

// Nest packs the parts onto the available stock, largest panels first.
// Sheets are opened on demand, preferring the smallest stock size the panel
// fits on.
func Nest(parts []model.Part, stock []model.StockSheet) *model.NestingResult {
	units := expand(parts)
	sort.Slice(units, func(i, j int) bool {
		return units[i].Area() > units[j].Area()
	})

	// Smallest stock first so the packer reaches for big sheets only when
	// it must.
	sizes := append([]model.StockSheet(nil), stock...)
	sort.Slice(sizes, func(i, j int) bool {
		return sizes[i].Width*sizes[i].Length < sizes[j].Width*sizes[j].Length
	})
	remaining := make([]int, len(sizes))
	for i, s := range sizes {
		remaining[i] = s.Quantity
	}

	var sheets []*openSheet
	var unplaced []model.Part

	for _, part := range units {
		if placeOnOpen(sheets, part) {
			continue
		}
		opened := false
		for i, s := range sizes {
			if remaining[i] <= 0 || !s.Fits(part) {
				continue
			}
			remaining[i]--
			sheet := &openSheet{stock: s}
			sheets = append(sheets, sheet)
			// Fits guarantees placement on an empty sheet.
			sheet.place(part)
			opened = true
			break
		}
		if !opened {
			unplaced = append(unplaced, part)
		}
	}

	return buildResult(sheets, unplaced)
}

func expand(parts []model.Part) []model.Part {
	var units []model.Part
	for _, p := range parts {
		qty := p.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := p
		unit.Quantity = 1
		for i := 0; i < qty; i++ {
			units = append(units, unit)
		}
	}
	return units
}

func placeOnOpen(sheets []*openSheet, part model.Part) bool {
	for _, sheet := range sheets {
		if sheet.place(part) {
			return true
		}
	}
	return false
}

// place tries the part in both orientations on existing shelves, then on a
// new shelf.
func (s *openSheet) place(part model.Part) bool {
	for _, rotated := range []bool{false, true} {
		w, l := part.Width, part.Length
		if rotated {
			w, l = l, w
		}
		if w > s.stock.Width || l > s.stock.Length {
			continue
		}
		for i := range s.shelves {
			sh := &s.shelves[i]
			if l <= sh.height && sh.cursor+w <= s.stock.Width {
				s.commit(part, sh.cursor, sh.y, rotated)
				sh.cursor += w + Kerf
				return true
			}
		}
		if s.top+l <= s.stock.Length && w <= s.stock.Width {
			s.shelves = append(s.shelves, shelf{y: s.top, height: l, cursor: w + Kerf})
			s.commit(part, 0, s.top, rotated)
			s.top += l + Kerf
			return true
		}
	}
	return false
}

func (s *openSheet) commit(part model.Part, x, y float64, rotated bool) {
	s.placed = append(s.placed, model.Placement{Part: part, X: x, Y: y, Rotated: rotated})
	s.used += part.Area()
}

func buildResult(sheets []*openSheet, unplaced []model.Part) *model.NestingResult {
	result := &model.NestingResult{Unplaced: unplaced}
	var usedTotal, areaTotal float64
	for _, s := range sheets {
		area := s.stock.Width * s.stock.Length
		usedTotal += s.used
		areaTotal += area
		result.Sheets = append(result.Sheets, model.NestedSheet{
			Stock:       s.stock,
			Placements:  s.placed,
			Utilization: s.used / area,
		})
	}
	if areaTotal > 0 {
		result.Utilization = usedTotal / areaTotal
	}
	return result
}
