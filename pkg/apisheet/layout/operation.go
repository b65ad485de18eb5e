package layout

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

// Page column layout. Parameter tables use all columns; schema trees and
// header tables leave the location column out.
const (
	nameColumn      = 1
	valueColumn     = 2
	locationColumn  = 2
	paramDescColumn = 3
	treeDescColumn  = 2
	pageWidth       = paramDescColumn + DescriptorColumns - 1
)

// OperationPage composes the sheet of one operation.
type OperationPage struct {
	Labels    Labels
	Flattener Flattener
	// SeparatorRows is the number of blank rows after each part.
	SeparatorRows int
	// Home is the anchor the home link points to.
	Home sheet.Anchor
}

// Compose writes op to sh starting at row 1 and returns the row after the
// last part.
func (p OperationPage) Compose(sh sheet.Sheet, op *models.Operation) int {
	w := &pageWriter{
		page:     p,
		sh:       sh,
		cur:      sheet.NewCursor(1),
		sections: sheet.NewSections(sh),
		desc:     Descriptor{Labels: p.Labels},
	}
	w.homeLink()
	w.operationInfo(op)
	w.parameters(op.Parameters)
	w.requestBody(op.RequestBody)
	w.responses(op.Responses)
	return w.cur.Current()
}

type pageWriter struct {
	page     OperationPage
	sh       sheet.Sheet
	cur      *sheet.Cursor
	sections *sheet.Sections
	desc     Descriptor
}

// part writes an optional title row, then body inside a section, then the
// separator rows.
func (w *pageWriter) part(title string, body func()) {
	if title != "" {
		row := w.cur.Current()
		w.sh.WriteCell(row, nameColumn, title, sheet.RoleTitle)
		w.sh.MergeRange(row, nameColumn, row, pageWidth)
		w.cur.Next()
	}
	func() {
		sec := w.sections.Open(w.cur)
		defer sec.Close()
		body()
	}()
	w.cur.Advance(w.page.SeparatorRows)
}

func (w *pageWriter) table(descColumn int) *Table {
	return &Table{
		Sheet:       w.sh,
		Cursor:      w.cur,
		Descriptor:  w.desc,
		Flattener:   w.page.Flattener,
		NameColumn:  nameColumn,
		StartColumn: descColumn,
	}
}

func (w *pageWriter) homeLink() {
	w.part("", func() {
		row := w.cur.Current()
		w.sh.WriteCell(row, nameColumn, w.page.Labels.HomeLink, sheet.RoleLink)
		w.sh.AddHyperlink(row, nameColumn, w.page.Home)
		w.cur.Next()
	})
}

func (w *pageWriter) infoRow(label, value string, role sheet.Role) {
	if value == "" {
		return
	}
	row := w.cur.Current()
	w.sh.WriteCell(row, nameColumn, label, sheet.RoleSubHeader)
	w.sh.WriteCell(row, valueColumn, value, role)
	w.sh.MergeRange(row, valueColumn, row, pageWidth)
	w.cur.Next()
}

func (w *pageWriter) operationInfo(op *models.Operation) {
	l := w.page.Labels
	w.part(l.OperationInfo, func() {
		w.infoRow(l.Method, Upper(string(op.Method)), sheet.RoleMethod)
		w.infoRow(l.OperationID, op.OperationID, sheet.RoleData)
		w.infoRow(l.Path, op.Path, sheet.RoleData)
		w.infoRow(l.PathDescription, StripHTML(op.PathDescription), sheet.RoleData)
		w.infoRow(l.PathSummary, op.PathSummary, sheet.RoleData)
		w.infoRow(l.OperationDescription, StripHTML(op.Description), sheet.RoleData)
		w.infoRow(l.OperationSummary, op.Summary, sheet.RoleData)
		w.infoRow(l.Tags, strings.Join(op.Tags, ", "), sheet.RoleData)
		if op.Deprecated {
			w.infoRow(l.Deprecated, l.Yes, sheet.RoleRequired)
		}
	})
}

func (w *pageWriter) parameters(params []models.Parameter) {
	var listed []models.Parameter
	for _, prm := range params {
		if !models.IsNil(prm.Schema) {
			listed = append(listed, prm)
		}
	}
	if len(listed) == 0 {
		return
	}
	l := w.page.Labels
	w.part(l.Parameters, func() {
		t := w.table(paramDescColumn)
		t.WriteHeader(l.Name, l.Location)
		for _, prm := range listed {
			row := w.cur.Current()
			w.sh.WriteCell(row, nameColumn, prm.Name, sheet.RoleName)
			w.sh.WriteCell(row, locationColumn, Upper(prm.In), sheet.RoleData)
			w.desc.Write(w.sh, row, paramDescColumn, w.desc.Describe(prm.Schema, prm.Required, prm.Description, true))
			w.cur.Next()
			t.Descend(prm.Schema, 1)
		}
	})
}

// mediaTypes writes one Content-Type line per media type, each followed by
// its schema tree in a nested section.
func (w *pageWriter) mediaTypes(content []models.MediaType) {
	l := w.page.Labels
	for _, mt := range content {
		w.subHeader(fmt.Sprintf(l.ContentTypeFormat, mt.ContentType))
		if models.IsNil(mt.Schema) {
			continue
		}
		func() {
			sec := w.sections.Open(w.cur)
			defer sec.Close()
			t := w.table(treeDescColumn)
			t.WriteHeader(l.Name)
			t.Tree(mt.Schema)
		}()
	}
}

func (w *pageWriter) subHeader(text string) {
	row := w.cur.Current()
	w.sh.WriteCell(row, nameColumn, text, sheet.RoleSubHeader)
	w.sh.MergeRange(row, nameColumn, row, pageWidth)
	w.cur.Next()
}

func (w *pageWriter) requestBody(body *models.RequestBody) {
	if body == nil {
		return
	}
	l := w.page.Labels
	w.part(l.RequestBody, func() {
		if body.Required {
			w.infoRow(l.Required, l.Yes, sheet.RoleRequired)
		}
		w.infoRow(l.Description, StripHTML(body.Description), sheet.RoleData)
		w.mediaTypes(body.Content)
	})
}

// StatusLine returns the title row of one response.
func (l Labels) StatusLine(code, description string) string {
	line := fmt.Sprintf(l.ResponseCodeFormat, code)
	if code == "default" {
		line = l.DefaultResponse
	}
	if description != "" && !strings.EqualFold(description, "default response") {
		line += ": " + StripHTML(description)
	}
	return line
}

func (w *pageWriter) responses(responses []models.Response) {
	if len(responses) == 0 {
		return
	}
	l := w.page.Labels
	w.part(l.Responses, func() {
		for _, resp := range responses {
			w.subHeader(l.StatusLine(resp.StatusCode, resp.Description))
			w.responseHeaders(resp.Headers)
			w.mediaTypes(resp.Content)
		}
	})
}

func (w *pageWriter) responseHeaders(headers []models.Header) {
	var listed []models.Header
	for _, h := range headers {
		if !models.IsNil(h.Schema) {
			listed = append(listed, h)
		}
	}
	if len(listed) == 0 {
		return
	}
	l := w.page.Labels
	w.subHeader(l.ResponseHeaders)
	sec := w.sections.Open(w.cur)
	defer sec.Close()
	t := w.table(treeDescColumn)
	t.WriteHeader(l.Name)
	for _, h := range listed {
		row := w.cur.Current()
		w.sh.WriteCell(row, nameColumn, h.Name, sheet.RoleName)
		w.desc.Write(w.sh, row, treeDescColumn, w.desc.Describe(h.Schema, h.Required, h.Description, true))
		w.cur.Next()
		t.Descend(h.Schema, 1)
	}
}

// Upper upper-cases a method or parameter location.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
