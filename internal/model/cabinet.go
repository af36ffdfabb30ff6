package model

// Default construction parameters, millimetres.
const (
	DefaultPanelThickness = 18.0
	DefaultBackThickness  = 3.0
	// DoorGap is the clearance left around each door leaf.
	DoorGap = 3.0
)

// Cabinet holds the design parameters for one carcass.
type Cabinet struct {
	Name           string  `json:"name"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Depth          float64 `json:"depth"`
	PanelThickness float64 `json:"panel_thickness"`
	ShelfCount     int     `json:"shelf_count"`
	DoorCount      int     `json:"door_count"`
	BackPanel      bool    `json:"back_panel"`
	Quantity       int     `json:"quantity"`
}

// NewCabinet creates a cabinet with sensible defaults: 18mm panels, a back
// panel, quantity one.
func NewCabinet(name string, width, height, depth float64) Cabinet {
	return Cabinet{
		Name:           name,
		Width:          width,
		Height:         height,
		Depth:          depth,
		PanelThickness: DefaultPanelThickness,
		BackPanel:      true,
		Quantity:       1,
	}
}

// Parts explodes the cabinet into the panels required to build it,
// multiplied by the cabinet quantity.
//
// Carcass construction: the sides run full height, the top and bottom sit
// between them, shelves are inset by the back thickness, and doors overlay
// the front split evenly across the width.
func (c Cabinet) Parts() []Part {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	t := c.PanelThickness
	if t <= 0 {
		t = DefaultPanelThickness
	}

	parts := []Part{
		{Cabinet: c.Name, Role: RoleSide, Width: c.Depth, Length: c.Height, Thickness: t, Quantity: 2 * qty},
		{Cabinet: c.Name, Role: RoleTop, Width: c.Width - 2*t, Length: c.Depth, Thickness: t, Quantity: qty},
		{Cabinet: c.Name, Role: RoleBottom, Width: c.Width - 2*t, Length: c.Depth, Thickness: t, Quantity: qty},
	}

	if c.BackPanel {
		parts = append(parts, Part{
			Cabinet: c.Name, Role: RoleBack,
			Width: c.Width, Length: c.Height,
			Thickness: DefaultBackThickness,
			Quantity:  qty,
		})
	}

	if c.ShelfCount > 0 {
		parts = append(parts, Part{
			Cabinet: c.Name, Role: RoleShelf,
			Width: c.Width - 2*t, Length: c.Depth - DefaultBackThickness,
			Thickness: t,
			Quantity:  c.ShelfCount * qty,
		})
	}

	if c.DoorCount > 0 {
		leafWidth := c.Width/float64(c.DoorCount) - DoorGap
		parts = append(parts, Part{
			Cabinet: c.Name, Role: RoleDoor,
			Width: leafWidth, Length: c.Height - DoorGap,
			Thickness: t,
			Quantity:  c.DoorCount * qty,
		})
	}

	return parts
}

// PartCount returns the number of physical panels the cabinet expands to.
func (c Cabinet) PartCount() int {
	n := 0
	for _, p := range c.Parts() {
		n += p.Quantity
	}
	return n
}
