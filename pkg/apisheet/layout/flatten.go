package layout

import (
	"fmt"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// Synthetic row names.
const (
	ArrayMarker = "<array>"
	ValueMarker = "<value>"
)

// CompositePolicy selects how composites with more than one branch are
// flattened.
type CompositePolicy string

const (
	// CompositeExpand merges allOf branches in place and lists each
	// anyOf/oneOf branch under a labeled row such as <oneOf 1>.
	CompositeExpand CompositePolicy = "expand"
	// CompositeSkip emits nothing for multi-branch composites. Single
	// branches and the own properties of mixed composites are still
	// flattened.
	CompositeSkip CompositePolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p CompositePolicy) Valid() bool {
	return p == CompositeExpand || p == CompositeSkip
}

// Row is one flattened schema row.
type Row struct {
	// Depth is the nesting level; the root's direct properties are at 1.
	Depth int
	// Name is the property name or a synthetic marker.
	Name string
	// Schema is the row's schema, never nil.
	Schema models.Schema
	// Required reports membership in the immediate parent's required set.
	Required bool
	// Synthetic marks rows that do not name a property.
	Synthetic bool
}

// EmitFunc receives flattened rows in output order.
type EmitFunc func(Row)

// Flattener turns a schema graph into a depth-bounded row sequence.
type Flattener struct {
	// MaxDepth bounds recursion: a row at depth d gets children only when
	// d+1 < MaxDepth.
	MaxDepth int
	// Composites selects the multi-branch composite policy. The zero value
	// behaves like CompositeSkip.
	Composites CompositePolicy
	// DetectCycles stops descent into a schema already being flattened on
	// the current path. Without it recursion is bounded by MaxDepth only.
	DetectCycles bool
}

// Flatten flattens schema as a root at the given depth, skipping
// multi-branch composites and without cycle detection.
func Flatten(schema models.Schema, depth, maxDepth int, emit EmitFunc) {
	f := Flattener{MaxDepth: maxDepth, Composites: CompositeSkip}
	f.root(schema, depth, emit)
}

// Root flattens a top-level schema. An array of objects is announced with
// an <array> row and its item properties follow at depth 1; a bare
// primitive yields a single <value> row.
func (f Flattener) Root(schema models.Schema, emit EmitFunc) {
	f.root(schema, 1, emit)
}

func (f Flattener) root(schema models.Schema, depth int, emit EmitFunc) {
	s := Unwrap(schema)
	if models.IsNil(s) {
		return
	}
	switch n := s.(type) {
	case *models.Array:
		if f.transparent(Unwrap(n.Items)) {
			emit(Row{Depth: depth, Name: ArrayMarker, Schema: n, Synthetic: true})
		}
	case *models.Primitive:
		emit(Row{Depth: depth, Name: ValueMarker, Schema: n, Synthetic: true})
		return
	}
	f.walk(s, depth, newPath(f.DetectCycles), emit)
}

// Children flattens the rows nested under a schema, the first of them at
// depth. It applies the same rules as Root but emits no root markers.
func (f Flattener) Children(schema models.Schema, depth int, emit EmitFunc) {
	f.walk(schema, depth, newPath(f.DetectCycles), emit)
}

// Descend flattens the children of a row written at depth, honoring the
// depth bound.
func (f Flattener) Descend(schema models.Schema, depth int, emit EmitFunc) {
	if depth+1 >= f.MaxDepth {
		return
	}
	f.Children(schema, depth+1, emit)
}

func (f Flattener) walk(s models.Schema, depth int, p *path, emit EmitFunc) {
	if models.IsNil(s) {
		return
	}
	if !p.enter(s) {
		return
	}
	defer p.leave(s)

	switch n := s.(type) {
	case *models.Array:
		items := Unwrap(n.Items)
		if f.transparent(items) {
			f.walk(items, depth, p, emit)
			return
		}
		if !models.IsNil(n.Items) {
			emit(Row{Depth: depth, Name: ValueMarker, Schema: n.Items, Synthetic: true})
		}

	case *models.Composite:
		if !p.inline(n, depth) {
			return
		}
		defer p.outline(n)
		switch {
		case n.Mixed():
			for _, part := range n.Branches {
				f.walk(part, depth, p, emit)
			}
			f.walk(n.Own, depth, p, emit)
		case len(n.Branches) == 1:
			f.walk(n.Branches[0], depth, p, emit)
		default:
			f.composite(n, depth, p, emit)
		}

	case *models.Object:
		for _, prop := range n.Properties {
			if models.IsNil(prop.Schema) {
				continue
			}
			emit(Row{Depth: depth, Name: prop.Name, Schema: prop.Schema, Required: prop.Required})
			if depth+1 < f.MaxDepth {
				f.walk(prop.Schema, depth+1, p, emit)
			}
		}
	}
}

// transparent reports whether array items are flattened in place of the
// array: objects with properties, mixed composites and, when the policy
// expands them, multi-branch composites.
func (f Flattener) transparent(items models.Schema) bool {
	if models.HasProperties(items) {
		return true
	}
	c, ok := items.(*models.Composite)
	if !ok || c == nil {
		return false
	}
	return c.Mixed() || (f.Composites == CompositeExpand && len(c.Branches) > 1)
}

func (f Flattener) composite(c *models.Composite, depth int, p *path, emit EmitFunc) {
	if f.Composites != CompositeExpand {
		return
	}
	if c.Kind == models.AllOf {
		for _, b := range c.Branches {
			f.walk(b, depth, p, emit)
		}
		return
	}
	for i, b := range c.Branches {
		if models.IsNil(b) {
			continue
		}
		emit(Row{Depth: depth, Name: BranchLabel(c.Kind, i), Schema: b, Synthetic: true})
		if depth+1 < f.MaxDepth {
			f.walk(b, depth+1, p, emit)
		}
	}
}

// BranchLabel names the i-th (0-based) branch of a composite row.
func BranchLabel(kind models.CompositeKind, i int) string {
	return fmt.Sprintf("<%s %d>", kind, i+1)
}

// Unwrap follows single-branch composites down to the first node that is
// not one. Mixed composites and a composite that wraps itself are returned
// as is.
func Unwrap(s models.Schema) models.Schema {
	var seen map[*models.Composite]bool
	for {
		c, ok := s.(*models.Composite)
		if !ok || c == nil || c.Mixed() || len(c.Branches) != 1 {
			return s
		}
		if seen == nil {
			seen = make(map[*models.Composite]bool)
		}
		if seen[c] {
			return s
		}
		seen[c] = true
		s = c.Branches[0]
	}
}

// path tracks the schemas on the current recursion path. seen is used only
// with cycle detection; inlined always guards composites that are expanded
// at the same depth, since those never advance the depth bound.
type path struct {
	seen    map[models.Schema]bool
	inlined map[*models.Composite][]int
}

func newPath(detectCycles bool) *path {
	p := &path{inlined: make(map[*models.Composite][]int)}
	if detectCycles {
		p.seen = make(map[models.Schema]bool)
	}
	return p
}

func (p *path) enter(s models.Schema) bool {
	if p.seen == nil {
		return true
	}
	if p.seen[s] {
		return false
	}
	p.seen[s] = true
	return true
}

func (p *path) leave(s models.Schema) {
	if p.seen != nil {
		delete(p.seen, s)
	}
}

// inline reports whether c may be expanded at depth, i.e. c is not already
// being expanded at that same depth.
func (p *path) inline(c *models.Composite, depth int) bool {
	depths := p.inlined[c]
	if len(depths) > 0 && depths[len(depths)-1] == depth {
		return false
	}
	p.inlined[c] = append(depths, depth)
	return true
}

func (p *path) outline(c *models.Composite) {
	depths := p.inlined[c]
	if len(depths) <= 1 {
		delete(p.inlined, c)
		return
	}
	p.inlined[c] = depths[:len(depths)-1]
}
