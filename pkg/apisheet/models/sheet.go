package models

// SheetData represents the composed content of a single sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows contains written rows in ascending row order.
	Rows []CellRow `json:"rows,omitempty"`
	// Merges contains merged cell ranges.
	Merges []RowRange `json:"merges,omitempty"`
	// Groups contains closed section ranges in close order.
	Groups []RowRange `json:"groups,omitempty"`
	// FrozenRows is the number of rows frozen at the top of the sheet.
	FrozenRows int `json:"frozen_rows,omitempty"`
	// ColumnWidths holds fitted column widths starting at column A (optional).
	ColumnWidths []float64 `json:"column_widths,omitempty"`
}

// Row returns the row with index r, or nil if nothing was written there.
func (s *SheetData) Row(r int) *CellRow {
	for i := range s.Rows {
		if s.Rows[i].R == r {
			return &s.Rows[i]
		}
	}
	return nil
}
