package models

// RowRange represents cell coordinate bounds inside a sheet.
type RowRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1,omitempty"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2,omitempty"`
	// Level is the nesting level of a section group (1 = outermost).
	Level int `json:"level,omitempty"`
}

// Contains reports whether row r lies inside the range.
func (rr RowRange) Contains(r int) bool {
	return r >= rr.R1 && r <= rr.R2
}
