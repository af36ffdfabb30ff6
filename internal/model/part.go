package model

// PartRole identifies a panel's function within a cabinet.
type PartRole string

const (
	RoleSide   PartRole = "side"
	RoleTop    PartRole = "top"
	RoleBottom PartRole = "bottom"
	RoleBack   PartRole = "back"
	RoleShelf  PartRole = "shelf"
	RoleDoor   PartRole = "door"
)

// Part is a rectangular panel to be cut from sheet stock. Width and Length
// are the cut dimensions in millimetres; Quantity is how many identical
// panels are required.
type Part struct {
	Cabinet   string   `json:"cabinet"`
	Role      PartRole `json:"role"`
	Width     float64  `json:"width"`
	Length    float64  `json:"length"`
	Thickness float64  `json:"thickness"`
	Quantity  int      `json:"quantity"`
}

// Area returns the panel area in square millimetres, for a single unit.
func (p Part) Area() float64 {
	return p.Width * p.Length
}
