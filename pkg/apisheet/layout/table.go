package layout

import (
	"strings"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

// Table writes flattened rows to a sheet: one row per emitted Row, the
// indented name in NameColumn and the descriptor tuple from StartColumn.
type Table struct {
	Sheet      sheet.Sheet
	Cursor     *sheet.Cursor
	Descriptor Descriptor
	Flattener  Flattener
	// NameColumn is the column of the indented name (default 1).
	NameColumn int
	// StartColumn is the first descriptor column.
	StartColumn int
}

// Indent returns the name prefix for a row at depth.
func Indent(depth int) string {
	if depth <= 1 {
		return ""
	}
	return strings.Repeat("  ", depth-1)
}

func (t *Table) nameColumn() int {
	if t.NameColumn < 1 {
		return 1
	}
	return t.NameColumn
}

// WriteHeader writes a header row: nameTitle in the name column, extra
// titles in the columns after it, and the descriptor titles from
// StartColumn. The cursor moves to the next row.
func (t *Table) WriteHeader(nameTitle string, extra ...string) {
	row := t.Cursor.Current()
	col := t.nameColumn()
	t.Sheet.WriteCell(row, col, nameTitle, sheet.RoleHeader)
	for i, title := range extra {
		t.Sheet.WriteCell(row, col+1+i, title, sheet.RoleHeader)
	}
	t.Descriptor.WriteHeader(t.Sheet, row, t.StartColumn)
	t.Cursor.Next()
}

// Emit writes r at the cursor and advances it. It is an EmitFunc.
func (t *Table) Emit(r Row) {
	row := t.Cursor.Current()
	role := sheet.RoleName
	if r.Synthetic {
		role = sheet.RoleSynthetic
	}
	t.Sheet.WriteCell(row, t.nameColumn(), Indent(r.Depth)+r.Name, role)
	t.Descriptor.Write(t.Sheet, row, t.StartColumn, t.Descriptor.Describe(r.Schema, r.Required, "", false))
	t.Cursor.Next()
}

// Tree writes the rows of a top-level schema.
func (t *Table) Tree(schema models.Schema) {
	t.Flattener.Root(schema, t.Emit)
}

// Descend writes the rows nested under a row already written at depth.
func (t *Table) Descend(schema models.Schema, depth int) {
	t.Flattener.Descend(schema, depth, t.Emit)
}
