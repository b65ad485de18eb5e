package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxOutlineLevel is the deepest row outline level a worksheet supports.
const maxOutlineLevel = 7

// ExcelBook is a Book backed by an excelize workbook. Roles are mapped to
// cell styles, closed sections become row outline levels, and anchors become
// same-document hyperlinks.
type ExcelBook struct {
	f      *excelize.File
	sheets []*ExcelSheet
	styles map[Role]int
	err    error
}

// NewExcelBook returns an empty workbook. The caller must Close it.
func NewExcelBook() *ExcelBook {
	return &ExcelBook{
		f:      excelize.NewFile(),
		styles: make(map[Role]int),
	}
}

// File exposes the underlying excelize workbook.
func (b *ExcelBook) File() *excelize.File {
	return b.f
}

// AddSheet implements Book. The first sheet takes over the default sheet
// excelize creates with a new file.
func (b *ExcelBook) AddSheet(name string) Sheet {
	s := &ExcelSheet{book: b, name: name, levels: make(map[int]int)}
	for _, other := range b.sheets {
		if strings.EqualFold(other.name, name) {
			b.fail(fmt.Errorf("sheet %q already exists", name))
			return s
		}
	}
	if len(b.sheets) == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			b.fail(fmt.Errorf("rename default sheet to %q: %w", name, err))
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		b.fail(fmt.Errorf("create sheet %q: %w", name, err))
	}
	b.sheets = append(b.sheets, s)
	return s
}

// SetActive implements Book.
func (b *ExcelBook) SetActive(name string) {
	idx, err := b.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		b.fail(fmt.Errorf("active sheet %q not found", name))
		return
	}
	b.f.SetActiveSheet(idx)
}

// AutoFit implements Book.
func (b *ExcelBook) AutoFit(minWidth float64) {
	for _, s := range b.sheets {
		rows, err := b.f.GetRows(s.name)
		if err != nil {
			b.fail(fmt.Errorf("read sheet %q: %w", s.name, err))
			continue
		}
		merges, err := readMerges(b.f, s.name)
		if err != nil {
			b.fail(err)
			continue
		}
		for i, w := range ColumnWidths(rows, merges, minWidth) {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				b.fail(err)
				break
			}
			if err := b.f.SetColWidth(s.name, col, col, w); err != nil {
				b.fail(fmt.Errorf("set width of %s!%s: %w", s.name, col, err))
			}
		}
	}
}

// Err implements Book.
func (b *ExcelBook) Err() error {
	return b.err
}

// SaveAs writes the workbook to path.
func (b *ExcelBook) SaveAs(path string) error {
	return b.f.SaveAs(path)
}

// Write writes the workbook to w.
func (b *ExcelBook) Write(w io.Writer) error {
	return b.f.Write(w)
}

// Close releases the workbook.
func (b *ExcelBook) Close() error {
	return b.f.Close()
}

func (b *ExcelBook) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// style returns the style id for a role, creating it on first use.
func (b *ExcelBook) style(role Role) (int, bool) {
	if id, ok := b.styles[role]; ok {
		return id, true
	}
	def := roleStyle(role)
	if def == nil {
		return 0, false
	}
	id, err := b.f.NewStyle(def)
	if err != nil {
		b.fail(fmt.Errorf("create %s style: %w", role, err))
		return 0, false
	}
	b.styles[role] = id
	return id, true
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "A6A6A6", Style: 1},
		{Type: "top", Color: "A6A6A6", Style: 1},
		{Type: "right", Color: "A6A6A6", Style: 1},
		{Type: "bottom", Color: "A6A6A6", Style: 1},
	}
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

// roleStyle maps a role to its cell style.
func roleStyle(role Role) *excelize.Style {
	switch role {
	case RoleTitle:
		return &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
			Fill: fill("1F4E78"),
		}
	case RoleHeader:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      fill("BDD7EE"),
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}
	case RoleSubHeader:
		return &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   fill("DDEBF7"),
			Border: thinBorder(),
		}
	case RoleData:
		return &excelize.Style{
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		}
	case RoleName:
		return &excelize.Style{
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Vertical: "top"},
		}
	case RoleSynthetic:
		return &excelize.Style{
			Font:   &excelize.Font{Italic: true, Color: "7F7F7F"},
			Border: thinBorder(),
		}
	case RoleRequired:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "C00000"},
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}
	case RoleOptional:
		return &excelize.Style{
			Font:      &excelize.Font{Color: "7F7F7F"},
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}
	case RoleMethod:
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}
	case RoleLink:
		return &excelize.Style{
			Font:   &excelize.Font{Color: "0563C1", Underline: "single"},
			Border: thinBorder(),
		}
	}
	return nil
}

// ExcelSheet is the Sheet produced by ExcelBook.
type ExcelSheet struct {
	book   *ExcelBook
	name   string
	levels map[int]int
}

// Name implements Sheet.
func (s *ExcelSheet) Name() string {
	return s.name
}

func (s *ExcelSheet) cell(row, col int) (string, bool) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.book.fail(fmt.Errorf("sheet %q: %w", s.name, err))
		return "", false
	}
	return name, true
}

// WriteCell implements Sheet.
func (s *ExcelSheet) WriteCell(row, col int, value string, role Role) {
	cell, ok := s.cell(row, col)
	if !ok {
		return
	}
	if err := s.book.f.SetCellStr(s.name, cell, value); err != nil {
		s.book.fail(fmt.Errorf("write %s!%s: %w", s.name, cell, err))
		return
	}
	if id, ok := s.book.style(role); ok {
		if err := s.book.f.SetCellStyle(s.name, cell, cell, id); err != nil {
			s.book.fail(fmt.Errorf("style %s!%s: %w", s.name, cell, err))
		}
	}
}

// MergeRange implements Sheet.
func (s *ExcelSheet) MergeRange(row1, col1, row2, col2 int) {
	top, ok := s.cell(row1, col1)
	if !ok {
		return
	}
	bottom, ok := s.cell(row2, col2)
	if !ok {
		return
	}
	if err := s.book.f.MergeCell(s.name, top, bottom); err != nil {
		s.book.fail(fmt.Errorf("merge %s!%s:%s: %w", s.name, top, bottom, err))
	}
}

// AddHyperlink implements Sheet.
func (s *ExcelSheet) AddHyperlink(row, col int, target Anchor) {
	cell, ok := s.cell(row, col)
	if !ok {
		return
	}
	if err := s.book.f.SetCellHyperLink(s.name, cell, target.String(), "Location"); err != nil {
		s.book.fail(fmt.Errorf("link %s!%s: %w", s.name, cell, err))
	}
}

// OpenSection implements Sheet. Grouping is applied on close.
func (s *ExcelSheet) OpenSection(start, level int) {}

// CloseSection implements Sheet. Every row of the section gets at least the
// section's outline level, capped at the deepest level a worksheet supports.
func (s *ExcelSheet) CloseSection(start, end, level int) {
	level = min(level, maxOutlineLevel)
	for r := start; r < end; r++ {
		if s.levels[r] >= level {
			continue
		}
		s.levels[r] = level
		if err := s.book.f.SetRowOutlineLevel(s.name, r, uint8(level)); err != nil {
			s.book.fail(fmt.Errorf("group %s row %d: %w", s.name, r, err))
			return
		}
	}
}

// FreezeRows implements Sheet.
func (s *ExcelSheet) FreezeRows(n int) {
	if n < 1 {
		return
	}
	top, ok := s.cell(n+1, 1)
	if !ok {
		return
	}
	err := s.book.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      n,
		TopLeftCell: top,
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		s.book.fail(fmt.Errorf("freeze %s: %w", s.name, err))
	}
}
