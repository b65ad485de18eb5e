package sheet

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// Column width limits in characters.
const (
	DefaultMinColumnWidth = 15.0
	MaxColumnWidth        = 80.0
	columnPadding         = 2.0
)

// ColumnWidths computes a width per column (index 0 = column A) for a grid of
// cell texts, such as the result of excelize GetRows. Columns with no content
// get no entry beyond the last used column. Each width is at least minWidth
// and at most MaxColumnWidth. Cells inside merged ranges do not count.
func ColumnWidths(rows [][]string, merges []models.RowRange, minWidth float64) []float64 {
	_, _, _, maxCol := findDataBounds(rows)
	if maxCol < 0 {
		return nil
	}
	widths := make([]float64, maxCol+1)
	for i := range widths {
		widths[i] = minWidth
	}
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" || merged(merges, rowIdx+1, colIdx+1) {
				continue
			}
			w := TextWidth(cell) + columnPadding
			if w > widths[colIdx] {
				widths[colIdx] = w
			}
		}
	}
	for i, w := range widths {
		if w > MaxColumnWidth {
			widths[i] = MaxColumnWidth
		}
	}
	return widths
}

func merged(merges []models.RowRange, row, col int) bool {
	for _, m := range merges {
		if row >= m.R1 && row <= m.R2 && col >= m.C1 && col <= m.C2 {
			return true
		}
	}
	return false
}

// TextWidth returns the display width of the widest line of s, counting
// East Asian wide and fullwidth runes as two columns.
func TextWidth(s string) float64 {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		n := 0
		for _, r := range line {
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
		if n > widest {
			widest = n
		}
	}
	return float64(widest)
}

// findDataBounds finds the bounding box of non-empty cells (0-based, -1 when
// the grid is empty).
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
