package sheet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelBookRoundTrip(t *testing.T) {
	b := NewExcelBook()
	defer b.Close()

	idx := b.AddSheet("Index")
	page := b.AddSheet("listPets")

	idx.WriteCell(1, 1, "Petstore", RoleTitle)
	idx.MergeRange(1, 1, 1, 3)
	idx.WriteCell(2, 1, "Method", RoleHeader)
	idx.WriteCell(3, 1, "GET", RoleMethod)
	idx.AddHyperlink(3, 1, SheetAnchor("listPets"))
	idx.FreezeRows(2)

	cur := NewCursor(1)
	st := NewSections(page)
	outer := st.Open(cur)
	page.WriteCell(cur.Current(), 1, "Index", RoleLink)
	page.AddHyperlink(cur.Current(), 1, SheetAnchor("Index"))
	cur.Next()
	inner := st.Open(cur)
	page.WriteCell(cur.Current(), 1, "name", RoleName)
	cur.Next()
	page.WriteCell(cur.Current(), 1, "  city", RoleName)
	cur.Next()
	inner.Close()
	outer.Close()

	b.SetActive("Index")
	b.AutoFit(DefaultMinColumnWidth)
	require.NoError(t, b.Err())

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, b.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Index", "listPets"}, f.GetSheetList())

	wb, err := ReadWorkbook(f, "out.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Index", wb.ActiveSheet)

	index := wb.Sheet("Index")
	require.NotNil(t, index)
	assert.Equal(t, "Petstore", index.Row(1).C["1"])
	assert.Equal(t, "'listPets'!A1", index.Row(3).Links["1"])
	assert.Equal(t, 2, index.FrozenRows)
	require.Len(t, index.Merges, 1)
	assert.Equal(t, 3, index.Merges[0].C2)

	pg := wb.Sheet("listPets")
	require.NotNil(t, pg)
	assert.Equal(t, "'Index'!A1", pg.Row(1).Links["1"])
	assert.Equal(t, "  city", pg.Row(3).C["1"])

	lvl, err := f.GetRowOutlineLevel("listPets", 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), lvl)
	lvl, err = f.GetRowOutlineLevel("listPets", 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), lvl)

	width, err := f.GetColWidth("Index", "A")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, DefaultMinColumnWidth)
}

func TestExcelBookAutoFitSkipsMergedCells(t *testing.T) {
	b := NewExcelBook()
	defer b.Close()
	idx := b.AddSheet("Index")
	idx.WriteCell(1, 1, strings.Repeat("long API description ", 10), RoleData)
	idx.MergeRange(1, 1, 1, 3)
	idx.WriteCell(2, 1, "GET", RoleMethod)
	b.AutoFit(DefaultMinColumnWidth)
	require.NoError(t, b.Err())

	width, err := b.f.GetColWidth("Index", "A")
	require.NoError(t, err)
	assert.Equal(t, DefaultMinColumnWidth, width)
}

func TestExcelBookDuplicateSheet(t *testing.T) {
	b := NewExcelBook()
	defer b.Close()
	b.AddSheet("A")
	b.AddSheet("B")
	b.AddSheet("B")
	assert.Error(t, b.Err())
}

func TestOutlineRuns(t *testing.T) {
	levels := []int{0, 1, 2, 2, 1, 0, 1}
	runs := outlineRuns(levels)
	require.Len(t, runs, 3)
	assert.Equal(t, 1, runs[0].R1)
	assert.Equal(t, 4, runs[0].R2)
	assert.Equal(t, 6, runs[1].R1)
	assert.Equal(t, 6, runs[1].R2)
	assert.Equal(t, 2, runs[2].Level)
	assert.Equal(t, 2, runs[2].R1)
	assert.Equal(t, 3, runs[2].R2)
}
