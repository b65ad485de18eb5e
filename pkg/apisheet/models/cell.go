package models

// CellRow represents a single written row of a sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]string `json:"c"`
	// Roles maps column index to the presentation role of the cell (optional).
	Roles map[string]string `json:"roles,omitempty"`
	// Links maps column index to a same-document anchor (optional).
	Links map[string]string `json:"links,omitempty"`
}
