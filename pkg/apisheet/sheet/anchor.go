package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Anchor identifies a cell of a sheet in the same workbook.
type Anchor struct {
	Sheet string
	Row   int
	Col   int
}

// SheetAnchor returns the anchor of the top-left cell of a sheet.
func SheetAnchor(name string) Anchor {
	return Anchor{Sheet: name, Row: 1, Col: 1}
}

// String formats the anchor as a same-document location, e.g. 'Index'!A1.
// Single quotes inside the sheet name are doubled.
func (a Anchor) String() string {
	cell, err := excelize.CoordinatesToCellName(max(a.Col, 1), max(a.Row, 1))
	if err != nil {
		cell = "A1"
	}
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(a.Sheet, "'", "''"), cell)
}

// ParseAnchor parses a location written by Anchor.String. The sheet name may
// be quoted or bare, and the cell may use $ absolute markers.
func ParseAnchor(ref string) (Anchor, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return Anchor{}, fmt.Errorf("anchor %q: missing sheet separator", ref)
	}
	name := ref[:idx]
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	if name == "" {
		return Anchor{}, fmt.Errorf("anchor %q: empty sheet name", ref)
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref[idx+1:], "$", ""))
	if err != nil {
		return Anchor{}, fmt.Errorf("anchor %q: %w", ref, err)
	}
	return Anchor{Sheet: name, Row: row, Col: col}, nil
}
