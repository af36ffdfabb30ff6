package model

import "fmt"

// ValidationResult holds the outcome of validating a project. A project
// with a non-empty Errors list cannot be nested.
type ValidationResult struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// HasErrors reports whether validation found hard errors. Safe on nil.
func (v *ValidationResult) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// Validate checks every cabinet and the draft against the stock on hand.
func (p *Project) Validate() *ValidationResult {
	result := &ValidationResult{}
	if p == nil {
		return result
	}

	for i, c := range p.Cabinets {
		validateCabinet(result, fmt.Sprintf("cabinet %d (%s)", i, c.Name), c)
	}
	if p.Draft != nil {
		validateCabinet(result, "draft cabinet", *p.Draft)
	}

	// Every panel must fit on at least one stock size.
	if len(p.Stock) > 0 {
		for _, part := range p.Parts() {
			if !fitsAnyStock(p.Stock, part) {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s %s (%.0fx%.0f) does not fit any stock sheet",
					part.Cabinet, part.Role, part.Width, part.Length))
			}
		}
	} else if len(p.Cabinets) > 0 || p.Draft != nil {
		result.Warnings = append(result.Warnings, "no stock sheets defined")
	}

	return result
}

func validateCabinet(result *ValidationResult, label string, c Cabinet) {
	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		result.Errors = append(result.Errors, label+": dimensions must be positive")
		return
	}
	t := c.PanelThickness
	if t <= 0 {
		t = DefaultPanelThickness
	}
	if c.Width <= 2*t {
		result.Errors = append(result.Errors, label+": width leaves no room between the sides")
	}
	if c.ShelfCount < 0 || c.DoorCount < 0 {
		result.Errors = append(result.Errors, label+": counts cannot be negative")
	}
	if c.ShelfCount > 0 && c.Height < float64(c.ShelfCount+1)*t {
		result.Errors = append(result.Errors, label+": too many shelves for the height")
	}
	if c.Quantity < 1 {
		result.Warnings = append(result.Warnings, label+": quantity defaults to 1")
	}
}

func fitsAnyStock(stock []StockSheet, p Part) bool {
	for _, s := range stock {
		if s.Fits(p) {
			return true
		}
	}
	return false
}
