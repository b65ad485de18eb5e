package sheet

// Role tags a written cell with its meaning. Sinks map roles to presentation;
// the composers never choose colors or fonts themselves.
type Role string

const (
	// RoleTitle marks a part title ("Parameters", "RESPONSE", ...).
	RoleTitle Role = "title"
	// RoleHeader marks a column title of a table.
	RoleHeader Role = "header"
	// RoleSubHeader marks a row label or a content-type/status line.
	RoleSubHeader Role = "subheader"
	// RoleData marks an ordinary value cell.
	RoleData Role = "data"
	// RoleName marks a property or parameter name cell.
	RoleName Role = "name"
	// RoleSynthetic marks a synthetic row name such as <array> or <value>.
	RoleSynthetic Role = "synthetic"
	// RoleRequired marks a required-flag cell that is set.
	RoleRequired Role = "required"
	// RoleOptional marks a required-flag cell that is not set.
	RoleOptional Role = "optional"
	// RoleMethod marks an HTTP method cell.
	RoleMethod Role = "method"
	// RoleLink marks a cell carrying a same-document hyperlink.
	RoleLink Role = "link"
)

// Sheet is the presentation sink for one worksheet. Calls never return
// errors: a sink keeps the first failure and reports it from Book.Err once
// composition is over.
type Sheet interface {
	// Name returns the worksheet name.
	Name() string
	// WriteCell writes value at (row, col), both 1-based.
	WriteCell(row, col int, value string, role Role)
	// MergeRange merges the inclusive rectangle (row1, col1)-(row2, col2).
	MergeRange(row1, col1, row2, col2 int)
	// AddHyperlink links the cell at (row, col) to target.
	AddHyperlink(row, col int, target Anchor)
	// OpenSection is called when a section opens at row start.
	OpenSection(start, level int)
	// CloseSection is called when a section spanning rows [start, end) closes.
	CloseSection(start, end, level int)
	// FreezeRows keeps the top n rows visible while scrolling.
	FreezeRows(n int)
}

// Book creates sheets and carries workbook-wide finishing.
type Book interface {
	// AddSheet creates a worksheet. Names must be unique within the book.
	AddSheet(name string) Sheet
	// SetActive selects the sheet shown when the workbook is opened.
	SetActive(name string)
	// AutoFit sizes used columns of every sheet to their content, never
	// narrower than minWidth characters.
	AutoFit(minWidth float64)
	// Err returns the first failure met by any sheet of the book.
	Err() error
}
