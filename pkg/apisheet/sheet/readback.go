package sheet

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads a written workbook back into models.WorkbookData:
// non-empty cells, same-document hyperlinks, merges, frozen rows and row
// outline levels. Roles and column widths are not recovered.
func ReadWorkbook(f *excelize.File, bookName string) (*models.WorkbookData, error) {
	wb := &models.WorkbookData{BookName: bookName}
	sheets := f.GetSheetList()
	if idx := f.GetActiveSheetIndex(); idx >= 0 && idx < len(sheets) {
		wb.ActiveSheet = f.GetSheetName(idx)
	}
	for _, name := range sheets {
		sd, err := ReadSheet(f, name)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, *sd)
	}
	return wb, nil
}

func readMerges(f *excelize.File, sheetName string) ([]models.RowRange, error) {
	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read merges of %q: %w", sheetName, err)
	}
	var out []models.RowRange
	for _, m := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		out = append(out, models.RowRange{R1: r1, C1: c1, R2: r2, C2: c2})
	}
	return out, nil
}

// ReadSheet reads one worksheet back. Groups are reported as maximal runs of
// rows sharing an outline level of at least 1, one range per level.
func ReadSheet(f *excelize.File, sheetName string) (*models.SheetData, error) {
	rows, err := ExtractCells(f, sheetName, true)
	if err != nil {
		return nil, fmt.Errorf("read cells of %q: %w", sheetName, err)
	}
	sd := &models.SheetData{Name: sheetName, Rows: rows}

	if sd.Merges, err = readMerges(f, sheetName); err != nil {
		return nil, err
	}

	panes, err := f.GetPanes(sheetName)
	if err == nil && panes.Freeze {
		sd.FrozenRows = panes.YSplit
	}

	last := 0
	if len(rows) > 0 {
		last = rows[len(rows)-1].R
	}
	levels := make([]int, last+1)
	for r := 1; r <= last; r++ {
		lvl, err := f.GetRowOutlineLevel(sheetName, r)
		if err != nil {
			return nil, fmt.Errorf("read outline of %q row %d: %w", sheetName, r, err)
		}
		levels[r] = int(lvl)
	}
	sd.Groups = outlineRuns(levels)
	return sd, nil
}

// outlineRuns turns per-row outline levels (index = row) into ranges: for
// each level L, every maximal run of rows whose level is >= L.
func outlineRuns(levels []int) []models.RowRange {
	var out []models.RowRange
	for lvl := 1; lvl <= maxOutlineLevel; lvl++ {
		start := 0
		for r := 1; r <= len(levels); r++ {
			in := r < len(levels) && levels[r] >= lvl
			switch {
			case in && start == 0:
				start = r
			case !in && start != 0:
				out = append(out, models.RowRange{R1: start, R2: r - 1, Level: lvl})
				start = 0
			}
		}
	}
	return out
}

// ExtractCells extracts the non-empty rows of a sheet. Column keys are
// 1-based column indexes rendered as strings.
func ExtractCells(f *excelize.File, sheetName string, includeLinks bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1
		cellMap := make(map[string]string)
		linkMap := make(map[string]string)

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colStr := strconv.Itoa(colIdx + 1)
			cellMap[colStr] = cellValue

			if includeLinks {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}
		}

		if len(cellMap) > 0 {
			cellRow := models.CellRow{R: rowNum, C: cellMap}
			if len(linkMap) > 0 {
				cellRow.Links = linkMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}
