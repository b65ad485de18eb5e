package layout

import (
	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

// DescriptorColumns is the number of columns a Description occupies.
const DescriptorColumns = 4

// Description is the fixed tuple of descriptive values for one schema.
type Description struct {
	Type       string
	Format     string
	Required   string
	Text       string
	IsRequired bool
}

// Descriptor renders schemas into Description tuples.
type Descriptor struct {
	Labels Labels
}

// Header returns the column titles, in tuple order.
func (d Descriptor) Header() []string {
	return []string{d.Labels.Type, d.Labels.Format, d.Labels.Required, d.Labels.Description}
}

// Describe renders s. defaultDescription is used when s has no description
// of its own. With inlineArray set, an array is shown as array(<item type>)
// and takes its format from the items.
func (d Descriptor) Describe(s models.Schema, required bool, defaultDescription string, inlineArray bool) Description {
	desc := Description{
		Type:       TypeLabel(s, inlineArray),
		Format:     formatOf(s, inlineArray),
		Required:   d.Labels.No,
		IsRequired: required,
	}
	if required {
		desc.Required = d.Labels.Yes
	}
	text := docOf(s)
	if text == "" {
		text = defaultDescription
	}
	desc.Text = StripHTML(text)
	return desc
}

// WriteHeader writes the column titles starting at col.
func (d Descriptor) WriteHeader(sh sheet.Sheet, row, col int) {
	for i, title := range d.Header() {
		sh.WriteCell(row, col+i, title, sheet.RoleHeader)
	}
}

// Write writes desc starting at col.
func (d Descriptor) Write(sh sheet.Sheet, row, col int, desc Description) {
	reqRole := sheet.RoleOptional
	if desc.IsRequired {
		reqRole = sheet.RoleRequired
	}
	sh.WriteCell(row, col, desc.Type, sheet.RoleData)
	sh.WriteCell(row, col+1, desc.Format, sheet.RoleData)
	sh.WriteCell(row, col+2, desc.Required, reqRole)
	sh.WriteCell(row, col+3, desc.Text, sheet.RoleData)
}

// TypeLabel returns the type column text for s.
func TypeLabel(s models.Schema, inlineArray bool) string {
	if models.IsNil(s) {
		return ""
	}
	switch n := s.(type) {
	case *models.Primitive:
		if n.Type == "" {
			return "any"
		}
		return n.Type
	case *models.Object:
		return "object"
	case *models.Array:
		if !inlineArray {
			return "array"
		}
		item := TypeLabel(n.Items, false)
		if item == "" {
			item = "any"
		}
		return "array(" + item + ")"
	case *models.Composite:
		if u, ok := unwrapped(n); ok {
			return TypeLabel(u, inlineArray)
		}
		return string(n.Kind)
	}
	return ""
}

func formatOf(s models.Schema, inlineArray bool) string {
	if models.IsNil(s) {
		return ""
	}
	switch n := s.(type) {
	case *models.Primitive:
		return n.Format
	case *models.Array:
		if inlineArray {
			return formatOf(n.Items, false)
		}
		return n.Format
	case *models.Composite:
		if u, ok := unwrapped(n); ok {
			return formatOf(u, inlineArray)
		}
	}
	return ""
}

// docOf returns the node's own description; a single-branch composite
// without one falls back to its branch.
func docOf(s models.Schema) string {
	if models.IsNil(s) {
		return ""
	}
	if doc := s.Doc(); doc != "" {
		return doc
	}
	if c, ok := s.(*models.Composite); ok {
		if u, ok := unwrapped(c); ok {
			return docOf(u)
		}
	}
	return ""
}

// unwrapped returns what a single-branch composite stands for, or false
// when c has several branches or only wraps itself.
func unwrapped(c *models.Composite) (models.Schema, bool) {
	u := Unwrap(c)
	if inner, ok := u.(*models.Composite); ok && len(inner.Branches) == 1 && !inner.Mixed() {
		return nil, false
	}
	return u, u != models.Schema(c)
}
