package layout

import (
	"fmt"
	"time"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

// Index page columns.
const (
	indexMethodColumn  = 1
	indexPathColumn    = 2
	indexSummaryColumn = 3
)

// noSummary fills the summary cell of an operation without one.
const noSummary = "-"

// IndexPage composes the navigation sheet.
type IndexPage struct {
	Labels Labels
	// Clock, when set, adds a generated-at line to the header block.
	Clock func() time.Time
}

// Index is an index sheet whose header block has been written. Links are
// appended with AddLink; Close ends the link section.
type Index struct {
	labels     Labels
	sh         sheet.Sheet
	cur        *sheet.Cursor
	section    *sheet.Section
	headerRows int
	links      int
}

// Begin writes the header block of doc's index to sh.
func (p IndexPage) Begin(sh sheet.Sheet, doc *models.Document) *Index {
	l := p.Labels
	cur := sheet.NewCursor(1)
	line := func(text string, role sheet.Role) {
		row := cur.Current()
		sh.WriteCell(row, indexMethodColumn, text, role)
		sh.MergeRange(row, indexMethodColumn, row, indexSummaryColumn)
		cur.Next()
	}

	title := doc.Title
	if title == "" {
		title = l.UntitledAPI
	}
	line(title, sheet.RoleTitle)
	if doc.Version != "" {
		line(fmt.Sprintf(l.VersionFormat, doc.Version), sheet.RoleSubHeader)
	}
	if desc := StripHTML(doc.Description); desc != "" {
		line(desc, sheet.RoleData)
	}
	if p.Clock != nil {
		line(fmt.Sprintf(l.GeneratedAtFormat, p.Clock().Format("2006-01-02 15:04")), sheet.RoleData)
	}
	cur.Next()
	line(l.Endpoints, sheet.RoleTitle)

	row := cur.Current()
	sh.WriteCell(row, indexMethodColumn, l.Method, sheet.RoleHeader)
	sh.WriteCell(row, indexPathColumn, l.Path, sheet.RoleHeader)
	sh.WriteCell(row, indexSummaryColumn, l.Summary, sheet.RoleHeader)
	cur.Next()

	ix := &Index{
		labels:     l,
		sh:         sh,
		cur:        cur,
		headerRows: cur.Current() - 1,
	}
	ix.section = sheet.NewSections(sh).Open(cur)
	return ix
}

// Anchor returns the anchor operation pages link back to.
func (ix *Index) Anchor() sheet.Anchor {
	return sheet.SheetAnchor(ix.sh.Name())
}

// HeaderRows returns the number of rows above the first link row.
func (ix *Index) HeaderRows() int {
	return ix.headerRows
}

// Links returns the number of link rows written so far.
func (ix *Index) Links() int {
	return ix.links
}

// AddLink appends the row of op, linked to the page named page.
func (ix *Index) AddLink(op *models.Operation, page string) {
	row := ix.cur.Current()
	target := sheet.SheetAnchor(page)

	ix.sh.WriteCell(row, indexMethodColumn, Upper(string(op.Method)), sheet.RoleMethod)
	ix.sh.AddHyperlink(row, indexMethodColumn, target)
	ix.sh.WriteCell(row, indexPathColumn, op.Path, sheet.RoleLink)
	ix.sh.AddHyperlink(row, indexPathColumn, target)

	summary := op.Summary
	if summary == "" {
		summary = StripHTML(op.Description)
	}
	if summary == "" {
		ix.sh.WriteCell(row, indexSummaryColumn, noSummary, sheet.RoleData)
	} else {
		ix.sh.WriteCell(row, indexSummaryColumn, summary, sheet.RoleLink)
		ix.sh.AddHyperlink(row, indexSummaryColumn, target)
	}

	ix.cur.Next()
	ix.links++
}

// Close ends the link section and freezes the header block.
func (ix *Index) Close() {
	ix.section.Close()
	ix.sh.FreezeRows(ix.headerRows)
}
