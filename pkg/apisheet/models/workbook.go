package models

// WorkbookData represents a composed workbook with its sheets in creation order.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// ActiveSheet is the name of the sheet shown on open.
	ActiveSheet string `json:"active_sheet,omitempty"`
	// Sheets in creation order.
	Sheets []SheetData `json:"sheets"`
}

// Sheet returns the sheet with the given name, or nil.
func (wb *WorkbookData) Sheet(name string) *SheetData {
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i]
		}
	}
	return nil
}
