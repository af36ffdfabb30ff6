package model

import "encoding/json"

// Project is the root document: the ordered cabinet sequence, an optional
// in-progress draft, the stock on hand, and cached results from the last
// validation and nesting runs. Cabinets are identified by their index.
type Project struct {
	Name       string            `json:"name"`
	Cabinets   []Cabinet         `json:"cabinets"`
	Draft      *Cabinet          `json:"draft,omitempty"`
	Stock      []StockSheet      `json:"stock,omitempty"`
	Nesting    *NestingResult    `json:"nesting,omitempty"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// NewProject creates an empty project with one bundle of full-size sheets.
func NewProject(name string) *Project {
	return &Project{
		Name: name,
		Stock: []StockSheet{
			NewStockSheet("full sheet", DefaultSheetWidth, DefaultSheetLength, 25),
		},
	}
}

// CabinetCount is the count shown to the user: committed cabinets plus one
// when a draft is being edited. Safe on a nil project.
func (p *Project) CabinetCount() int {
	if p == nil {
		return 0
	}
	n := len(p.Cabinets)
	if p.Draft != nil {
		n++
	}
	return n
}

// Parts expands every committed cabinet and the draft into panels.
func (p *Project) Parts() []Part {
	if p == nil {
		return nil
	}
	var parts []Part
	for _, c := range p.Cabinets {
		parts = append(parts, c.Parts()...)
	}
	if p.Draft != nil {
		parts = append(parts, p.Draft.Parts()...)
	}
	return parts
}

// PartCount returns the total number of physical panels in the project.
func (p *Project) PartCount() int {
	n := 0
	for _, part := range p.Parts() {
		n += part.Quantity
	}
	return n
}

// CutList builds the merged cut list for the whole project.
func (p *Project) CutList() []CutItem {
	return BuildCutList(p.Parts())
}

// Clone returns a deep copy via the JSON wire form, which is also the
// snapshot format used by the undo history.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		// The document is plain data; marshalling cannot fail.
		panic(err)
	}
	var out Project
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}
