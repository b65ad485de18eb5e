package sheet

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// MemoryBook is a Book that records every call in memory. Its content is
// available as models.WorkbookData, which is also what the JSON output
// format serializes.
type MemoryBook struct {
	name   string
	sheets []*MemorySheet
	active string
	err    error
}

// NewMemoryBook returns an empty in-memory workbook.
func NewMemoryBook(name string) *MemoryBook {
	return &MemoryBook{name: name}
}

// AddSheet implements Book.
func (b *MemoryBook) AddSheet(name string) Sheet {
	if b.Sheet(name) != nil {
		b.fail(fmt.Errorf("sheet %q already exists", name))
	}
	s := &MemorySheet{book: b, name: name, rows: make(map[int]*models.CellRow)}
	b.sheets = append(b.sheets, s)
	return s
}

// Sheet returns the sheet with the given name, or nil.
func (b *MemoryBook) Sheet(name string) *MemorySheet {
	for _, s := range b.sheets {
		if s.name == name {
			return s
		}
	}
	return nil
}

// SetActive implements Book.
func (b *MemoryBook) SetActive(name string) {
	if b.Sheet(name) == nil {
		b.fail(fmt.Errorf("active sheet %q does not exist", name))
		return
	}
	b.active = name
}

// AutoFit implements Book. Widths are stored on each sheet.
func (b *MemoryBook) AutoFit(minWidth float64) {
	for _, s := range b.sheets {
		s.widths = ColumnWidths(s.grid(), s.merges, minWidth)
	}
}

// Err implements Book.
func (b *MemoryBook) Err() error {
	return b.err
}

func (b *MemoryBook) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Data returns a snapshot of the recorded workbook, sheets in creation order
// and rows in ascending order.
func (b *MemoryBook) Data() *models.WorkbookData {
	wb := &models.WorkbookData{
		BookName:    b.name,
		ActiveSheet: b.active,
		Sheets:      make([]models.SheetData, 0, len(b.sheets)),
	}
	for _, s := range b.sheets {
		wb.Sheets = append(wb.Sheets, s.data())
	}
	return wb
}

// MemorySheet is the Sheet produced by MemoryBook.
type MemorySheet struct {
	book   *MemoryBook
	name   string
	rows   map[int]*models.CellRow
	merges []models.RowRange
	groups []models.RowRange
	open   []int
	frozen int
	widths []float64
}

// Name implements Sheet.
func (s *MemorySheet) Name() string {
	return s.name
}

// WriteCell implements Sheet.
func (s *MemorySheet) WriteCell(row, col int, value string, role Role) {
	if row < 1 || col < 1 {
		s.book.fail(fmt.Errorf("sheet %q: invalid cell (%d, %d)", s.name, row, col))
		return
	}
	r := s.row(row)
	key := strconv.Itoa(col)
	r.C[key] = value
	if role != "" {
		if r.Roles == nil {
			r.Roles = make(map[string]string)
		}
		r.Roles[key] = string(role)
	}
}

// MergeRange implements Sheet.
func (s *MemorySheet) MergeRange(row1, col1, row2, col2 int) {
	s.merges = append(s.merges, models.RowRange{R1: row1, C1: col1, R2: row2, C2: col2})
}

// AddHyperlink implements Sheet.
func (s *MemorySheet) AddHyperlink(row, col int, target Anchor) {
	r := s.row(row)
	if r.Links == nil {
		r.Links = make(map[string]string)
	}
	r.Links[strconv.Itoa(col)] = target.String()
}

// OpenSection implements Sheet.
func (s *MemorySheet) OpenSection(start, level int) {
	if level != len(s.open)+1 {
		s.book.fail(fmt.Errorf("sheet %q: section opened at level %d with %d open", s.name, level, len(s.open)))
	}
	s.open = append(s.open, start)
}

// CloseSection implements Sheet. Groups are stored with an inclusive end
// row, so an empty section has R2 < R1.
func (s *MemorySheet) CloseSection(start, end, level int) {
	if len(s.open) != level || s.open[len(s.open)-1] != start {
		s.book.fail(fmt.Errorf("sheet %q: section [%d, %d) closed out of order", s.name, start, end))
	} else {
		s.open = s.open[:len(s.open)-1]
	}
	s.groups = append(s.groups, models.RowRange{R1: start, R2: end - 1, Level: level})
}

// FreezeRows implements Sheet.
func (s *MemorySheet) FreezeRows(n int) {
	s.frozen = n
}

// OpenSections returns the number of sections not yet closed.
func (s *MemorySheet) OpenSections() int {
	return len(s.open)
}

// Data returns a snapshot of the sheet.
func (s *MemorySheet) Data() models.SheetData {
	return s.data()
}

func (s *MemorySheet) row(r int) *models.CellRow {
	cr, ok := s.rows[r]
	if !ok {
		cr = &models.CellRow{R: r, C: make(map[string]string)}
		s.rows[r] = cr
	}
	return cr
}

func (s *MemorySheet) sortedRows() []int {
	keys := make([]int, 0, len(s.rows))
	for r := range s.rows {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	return keys
}

// grid renders the recorded cells as a GetRows-style matrix.
func (s *MemorySheet) grid() [][]string {
	keys := s.sortedRows()
	if len(keys) == 0 {
		return nil
	}
	grid := make([][]string, keys[len(keys)-1])
	for _, r := range keys {
		for k, v := range s.rows[r].C {
			col, err := strconv.Atoi(k)
			if err != nil || col < 1 {
				continue
			}
			line := grid[r-1]
			for len(line) < col {
				line = append(line, "")
			}
			line[col-1] = v
			grid[r-1] = line
		}
	}
	return grid
}

func (s *MemorySheet) data() models.SheetData {
	sd := models.SheetData{
		Name:         s.name,
		Merges:       slices.Clone(s.merges),
		Groups:       slices.Clone(s.groups),
		FrozenRows:   s.frozen,
		ColumnWidths: slices.Clone(s.widths),
	}
	for _, r := range s.sortedRows() {
		sd.Rows = append(sd.Rows, *s.rows[r])
	}
	return sd
}
