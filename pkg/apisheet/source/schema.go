package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oastools/parser"
	"go.yaml.in/yaml/v4"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// schemaRoots maps the leading pointer tokens of a schema $ref to the
// collection holding its target.
type schemaRoots struct {
	// prefix is the pointer of the collection, e.g. "/components/schemas".
	prefix  string
	schemas map[string]*parser.Schema
}

// converter turns parser schemas into models schemas. Each source schema is
// converted once, so a recursive definition becomes a pointer cycle.
type converter struct {
	order     *KeyOrder
	roots     []schemaRoots
	memo      map[*parser.Schema]models.Schema
	missing   map[string]models.Schema
	decoded   map[string]*parser.Schema
	resolving map[string]bool
	warnings  []string
}

func newConverter(order *KeyOrder, roots ...schemaRoots) *converter {
	return &converter{
		order:     order,
		roots:     roots,
		memo:      make(map[*parser.Schema]models.Schema),
		missing:   make(map[string]models.Schema),
		decoded:   make(map[string]*parser.Schema),
		resolving: make(map[string]bool),
	}
}

func (c *converter) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// schema converts s, declared at pointer ptr.
func (c *converter) schema(s *parser.Schema, ptr string) models.Schema {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		return c.ref(s.Ref)
	}
	if m, ok := c.memo[s]; ok {
		return m
	}

	if comp := c.composite(s, ptr); comp != nil {
		return comp
	}

	typ := primaryType(s.Type)
	switch {
	case typ == "array" || s.Items != nil:
		arr := &models.Array{Format: s.Format, Description: s.Description}
		c.memo[s] = arr
		arr.Items = c.items(s.Items, ptr+"/items")
		return arr

	case typ == "object" || len(s.Properties) > 0:
		obj := models.NewObject(s.Required)
		obj.Description = s.Description
		c.memo[s] = obj
		obj.AddProperties(c.properties(s, ptr)...)
		return obj
	}

	p := &models.Primitive{Type: typ, Format: s.Format, Description: s.Description}
	c.memo[s] = p
	return p
}

func (c *converter) properties(s *parser.Schema, ptr string) []models.Property {
	var props []models.Property
	for _, name := range SortedKeys(c.order, ptr+"/properties", s.Properties) {
		child := c.schema(s.Properties[name], ptr+"/properties/"+EscapePointer(name))
		props = append(props, models.Prop(name, child))
	}
	return props
}

// composite converts a schema using allOf/anyOf/oneOf. A schema with a
// single composition keyword and no own properties maps directly to a
// Composite; anything richer becomes a mixed composite.
func (c *converter) composite(s *parser.Schema, ptr string) models.Schema {
	kinds := 0
	for _, list := range [][]*parser.Schema{s.AllOf, s.AnyOf, s.OneOf} {
		if len(list) > 0 {
			kinds++
		}
	}
	if kinds == 0 {
		return nil
	}

	out := &models.Composite{Kind: models.AllOf, Description: s.Description}
	c.memo[s] = out

	branches := func(kind string, list []*parser.Schema) []models.Schema {
		var bs []models.Schema
		for i, b := range list {
			bs = append(bs, c.schema(b, ptr+"/"+kind+"/"+strconv.Itoa(i)))
		}
		return bs
	}

	if kinds == 1 && len(s.Properties) == 0 {
		switch {
		case len(s.AllOf) > 0:
			out.Branches = branches("allOf", s.AllOf)
		case len(s.AnyOf) > 0:
			out.Kind = models.AnyOf
			out.Branches = branches("anyOf", s.AnyOf)
		default:
			out.Kind = models.OneOf
			out.Branches = branches("oneOf", s.OneOf)
		}
		return out
	}

	out.Own = models.NewObject(s.Required, c.properties(s, ptr)...)
	part := func(kind models.CompositeKind, list []*parser.Schema) {
		switch bs := branches(string(kind), list); len(bs) {
		case 0:
		case 1:
			out.Branches = append(out.Branches, bs[0])
		default:
			out.Branches = append(out.Branches, &models.Composite{Kind: kind, Branches: bs})
		}
	}
	part(models.AllOf, s.AllOf)
	part(models.AnyOf, s.AnyOf)
	part(models.OneOf, s.OneOf)
	return out
}

// items converts the value of an items keyword: a schema, a tuple of
// schemas (the first one describes the elements) or a boolean.
func (c *converter) items(v any, ptr string) models.Schema {
	switch it := v.(type) {
	case []*parser.Schema:
		if len(it) > 0 {
			return c.schema(it[0], ptr+"/0")
		}
	case []any:
		if len(it) > 0 {
			return c.schema(c.subschema(it[0], ptr+"/0"), ptr+"/0")
		}
	default:
		return c.schema(c.subschema(v, ptr), ptr)
	}
	return nil
}

// subschema returns the schema held by an untyped keyword value. Without
// reference resolution the parser leaves nested schemas under items and
// additionalProperties as plain maps; those are decoded once per pointer so
// that the memo sees a stable identity.
func (c *converter) subschema(v any, ptr string) *parser.Schema {
	switch sv := v.(type) {
	case *parser.Schema:
		return sv
	case map[string]any:
		if s, ok := c.decoded[ptr]; ok {
			return s
		}
		s := new(parser.Schema)
		data, err := yaml.Marshal(sv)
		if err == nil {
			err = yaml.Unmarshal(data, s)
		}
		if err != nil {
			c.warnf("%s: %v", ptr, err)
			s = nil
		}
		c.decoded[ptr] = s
		return s
	}
	return nil
}

// primaryType returns the first non-null type of a type keyword, which may
// be a string or a list (OAS 3.1).
func primaryType(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []string:
		for _, s := range v {
			if s != "null" {
				return s
			}
		}
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s != "null" {
				return s
			}
		}
	}
	return ""
}

// ref resolves a local schema reference. An unresolvable reference becomes a
// primitive labeled with the reference's last token, with a warning.
func (c *converter) ref(ref string) models.Schema {
	if target, ptr, ok := c.lookupSchema(ref); ok {
		if m, ok := c.memo[target]; ok {
			return m
		}
		// A chain of bare references that loops back has no schema to
		// converge on; it falls through to the unresolved case.
		if !c.resolving[ref] {
			c.resolving[ref] = true
			defer delete(c.resolving, ref)
			return c.schema(target, ptr)
		}
	}
	if m, ok := c.missing[ref]; ok {
		return m
	}
	c.warnf("unresolved schema reference %q", ref)
	m := &models.Primitive{Type: refName(ref)}
	c.missing[ref] = m
	return m
}

// lookupSchema finds the schema a local reference points to, returning it
// with its JSON pointer.
func (c *converter) lookupSchema(ref string) (*parser.Schema, string, bool) {
	ptr, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return nil, "", false
	}
	for _, root := range c.roots {
		rest, ok := strings.CutPrefix(ptr, root.prefix+"/")
		if !ok {
			continue
		}
		tokens := strings.Split(rest, "/")
		s := root.schemas[UnescapePointer(tokens[0])]
		at := root.prefix + "/" + tokens[0]
		for i := 1; i < len(tokens) && s != nil; i++ {
			s, i, at = c.descend(s, tokens, i, at)
		}
		if s == nil {
			return nil, "", false
		}
		return s, ptr, true
	}
	return nil, "", false
}

// descend follows the pointer token(s) at tokens[i] inside s, declared at
// pointer at. It returns the child, the index of the last token consumed
// and the child's pointer.
func (c *converter) descend(s *parser.Schema, tokens []string, i int, at string) (*parser.Schema, int, string) {
	switch tokens[i] {
	case "items":
		at += "/items"
		return c.subschema(s.Items, at), i, at
	case "additionalProperties":
		at += "/additionalProperties"
		return c.subschema(s.AdditionalProperties, at), i, at
	}
	if i+1 >= len(tokens) {
		return nil, i, at
	}
	at += "/" + tokens[i] + "/" + tokens[i+1]
	next := UnescapePointer(tokens[i+1])
	switch tokens[i] {
	case "properties":
		return s.Properties[next], i + 1, at
	case "allOf", "anyOf", "oneOf":
		list := map[string][]*parser.Schema{"allOf": s.AllOf, "anyOf": s.AnyOf, "oneOf": s.OneOf}[tokens[i]]
		n, err := strconv.Atoi(next)
		if err != nil || n < 0 || n >= len(list) {
			return nil, i + 1, at
		}
		return list[n], i + 1, at
	}
	return nil, i, at
}

// refName returns the last token of a reference.
func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return UnescapePointer(ref[i+1:])
	}
	return ref
}

// itemsSchema synthesizes a schema from OAS 2.0 items.
func itemsSchema(it *parser.Items) models.Schema {
	if it == nil {
		return nil
	}
	if it.Type == "array" {
		return &models.Array{Items: itemsSchema(it.Items)}
	}
	return &models.Primitive{Type: it.Type, Format: it.Format}
}

// simpleSchema synthesizes the schema of an OAS 2.0 non-body parameter or
// header from its type, format and items.
func simpleSchema(typ, format string, items *parser.Items) models.Schema {
	if typ == "" {
		return nil
	}
	if typ == "array" {
		return &models.Array{Items: itemsSchema(items), Format: format}
	}
	return &models.Primitive{Type: typ, Format: format}
}
