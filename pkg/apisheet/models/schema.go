// Package models defines the document and workbook data structures shared by
// the source, layout and sheet packages.
package models

// Schema is one node of a resolved schema graph. It is implemented by
// *Primitive, *Object, *Array and *Composite; a nil Schema means "absent".
//
// Schema graphs are built once by the source package and never mutated
// afterwards. A recursive definition is represented as a pointer cycle.
type Schema interface {
	// Doc returns the node's own description, if any.
	Doc() string
	schemaNode()
}

// Primitive is a scalar schema such as a string or an integer.
type Primitive struct {
	// Type is the JSON type name ("string", "integer", ...). Empty when the
	// document does not declare one.
	Type string `json:"type,omitempty"`
	// Format is the optional format hint ("date-time", "int64", ...).
	Format string `json:"format,omitempty"`
	// Description is the node's own description.
	Description string `json:"description,omitempty"`
}

// Property is a named member of an Object.
type Property struct {
	// Name is the property key.
	Name string `json:"name"`
	// Schema is the property's schema; nil when the document gives none.
	Schema Schema `json:"-"`
	// Required reports membership of Name in the parent object's required set.
	Required bool `json:"required"`
}

// Object is a schema with named properties.
type Object struct {
	// Properties in declared order.
	Properties []Property `json:"properties,omitempty"`
	// RequiredNames is the object's required-name set.
	RequiredNames map[string]bool `json:"required,omitempty"`
	// Description is the node's own description.
	Description string `json:"description,omitempty"`
}

// Array is a schema whose instances are lists of Items.
type Array struct {
	// Items is the element schema; nil when the document gives none.
	Items Schema `json:"-"`
	// Format is the array's own format hint, if any.
	Format string `json:"format,omitempty"`
	// Description is the node's own description.
	Description string `json:"description,omitempty"`
}

// CompositeKind names a schema composition keyword.
type CompositeKind string

const (
	// AllOf requires every branch to validate.
	AllOf CompositeKind = "allOf"
	// AnyOf requires at least one branch to validate.
	AnyOf CompositeKind = "anyOf"
	// OneOf requires exactly one branch to validate.
	OneOf CompositeKind = "oneOf"
)

// Composite is a schema composed from other schemas.
//
// A schema that has properties of its own next to a composition keyword,
// or several composition keywords, is a mixed composite: Own is non-nil,
// Kind is AllOf and Branches holds one part per keyword in allOf, anyOf,
// oneOf order. A keyword with a single schema contributes that schema as
// its part; otherwise the part is a nested Composite of that keyword.
type Composite struct {
	Kind        CompositeKind `json:"kind"`
	Branches    []Schema      `json:"-"`
	Own         *Object       `json:"-"`
	Description string        `json:"description,omitempty"`
}

// Mixed reports whether c carries the parts of a mixed composite.
func (c *Composite) Mixed() bool { return c != nil && c.Own != nil }

func (p *Primitive) Doc() string { return p.Description }
func (o *Object) Doc() string    { return o.Description }
func (a *Array) Doc() string     { return a.Description }
func (c *Composite) Doc() string { return c.Description }

func (*Primitive) schemaNode() {}
func (*Object) schemaNode()    {}
func (*Array) schemaNode()     {}
func (*Composite) schemaNode() {}

// NewObject builds an Object from properties in declared order. The
// Required flag of each property is derived from the required names.
func NewObject(required []string, props ...Property) *Object {
	o := &Object{RequiredNames: make(map[string]bool, len(required))}
	for _, name := range required {
		o.RequiredNames[name] = true
	}
	o.AddProperties(props...)
	return o
}

// AddProperties appends properties, deriving each Required flag from the
// object's required-name set.
func (o *Object) AddProperties(props ...Property) {
	for _, p := range props {
		p.Required = o.RequiredNames[p.Name]
		o.Properties = append(o.Properties, p)
	}
}

// Prop is shorthand for an unflagged Property.
func Prop(name string, schema Schema) Property {
	return Property{Name: name, Schema: schema}
}

// IsNil reports whether s is absent, including a typed nil pointer.
func IsNil(s Schema) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *Primitive:
		return v == nil
	case *Object:
		return v == nil
	case *Array:
		return v == nil
	case *Composite:
		return v == nil
	}
	return false
}

// HasProperties reports whether s is an object with at least one property.
func HasProperties(s Schema) bool {
	o, ok := s.(*Object)
	return ok && o != nil && len(o.Properties) > 0
}
