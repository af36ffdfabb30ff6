package model

// Standard full sheet size, millimetres.
const (
	DefaultSheetWidth  = 1220.0
	DefaultSheetLength = 2440.0
)

// StockSheet describes a purchasable sheet size and how many are on hand.
type StockSheet struct {
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

// NewStockSheet creates a stock entry.
func NewStockSheet(name string, width, length float64, quantity int) StockSheet {
	return StockSheet{Name: name, Width: width, Length: length, Quantity: quantity}
}

// Fits reports whether a part fits on the sheet in either orientation.
func (s StockSheet) Fits(p Part) bool {
	if p.Width <= s.Width && p.Length <= s.Length {
		return true
	}
	return p.Length <= s.Width && p.Width <= s.Length
}

// Placement positions one panel on a nested sheet. X/Y are the offsets of
// the panel's corner from the sheet origin.
type Placement struct {
	Part    Part    `json:"part"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Rotated bool    `json:"rotated"`
}

// NestedSheet is one stock sheet with its placed panels.
type NestedSheet struct {
	Stock       StockSheet  `json:"stock"`
	Placements  []Placement `json:"placements"`
	Utilization float64     `json:"utilization"`
}

// NestingResult is the outcome of nesting a part set onto stock.
type NestingResult struct {
	Sheets      []NestedSheet `json:"sheets"`
	Unplaced    []Part        `json:"unplaced,omitempty"`
	Utilization float64       `json:"utilization"`
}
