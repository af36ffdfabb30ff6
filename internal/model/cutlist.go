package model

import "sort"

// CutItem is one row of the cut list: all panels sharing the same
// dimensions, thickness and role, merged across cabinets.
type CutItem struct {
	Role      PartRole `json:"role"`
	Width     float64  `json:"width"`
	Length    float64  `json:"length"`
	Thickness float64  `json:"thickness"`
	Quantity  int      `json:"quantity"`
	Cabinets  []string `json:"cabinets,omitempty"`
}

type cutKey struct {
	role      PartRole
	width     float64
	length    float64
	thickness float64
}

// BuildCutList merges identical parts into cut-list rows, sorted largest
// area first to match shop cutting order.
func BuildCutList(parts []Part) []CutItem {
	merged := make(map[cutKey]*CutItem)
	for _, p := range parts {
		key := cutKey{p.Role, p.Width, p.Length, p.Thickness}
		item, ok := merged[key]
		if !ok {
			item = &CutItem{
				Role:      p.Role,
				Width:     p.Width,
				Length:    p.Length,
				Thickness: p.Thickness,
			}
			merged[key] = item
		}
		item.Quantity += p.Quantity
		if p.Cabinet != "" && !containsString(item.Cabinets, p.Cabinet) {
			item.Cabinets = append(item.Cabinets, p.Cabinet)
		}
	}

	items := make([]CutItem, 0, len(merged))
	for _, item := range merged {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		ai := items[i].Width * items[i].Length
		aj := items[j].Width * items[j].Length
		if ai != aj {
			return ai > aj
		}
		return items[i].Role < items[j].Role
	})
	return items
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
