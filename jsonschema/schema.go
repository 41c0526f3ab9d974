// Package jsonschema models the JSON Schema (draft 2020-12) subset emitted by
// the schema builders and assembles self-contained documents from it.
package jsonschema

// Dialect is the meta-schema every exported document declares.
const Dialect = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema node. Name and Target never reach the wire: Name
// marks a node that is hoisted into $defs on export, Target links a $ref node
// to the named node it points at.
type Schema struct {
	Name   string  `json:"-"`
	Target *Schema `json:"-"`

	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Enum   []any  `json:"enum,omitempty"`
	// Default is emitted when HasDefault is set, so a null default survives.
	Default    any  `json:"default,omitempty"`
	HasDefault bool `json:"-"`

	// Numeric
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	// PropertyOrder lists property names in declaration order. Names missing
	// from it are emitted afterwards in sorted order.
	PropertyOrder        []string `json:"-"`
	Required             []string `json:"required,omitempty"`
	AdditionalProperties any      `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// RefTo returns a $ref node pointing at the named schema s.
func RefTo(s *Schema) *Schema {
	return &Schema{Ref: DefRef(s.Name), Target: s}
}

// DefRef returns the local reference for a definition name.
func DefRef(name string) string { return "#/$defs/" + escape(name) }

// Null returns the schema of the JSON null value.
func Null() *Schema { return &Schema{Type: "null"} }

// Optional wraps s as anyOf [s, null] with a null default. Named schemas are
// referenced instead of inlined.
func Optional(s *Schema) *Schema {
	if s.Name != "" {
		s = RefTo(s)
	}
	return &Schema{AnyOf: []*Schema{s, Null()}, Default: nil, HasDefault: true}
}

// Clone returns a shallow copy of s, detaching the maps and slices a caller
// is likely to extend.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	if s.Properties != nil {
		c.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			c.Properties[k] = v
		}
	}
	c.PropertyOrder = append([]string(nil), s.PropertyOrder...)
	c.Required = append([]string(nil), s.Required...)
	c.AnyOf = append([]*Schema(nil), s.AnyOf...)
	c.OneOf = append([]*Schema(nil), s.OneOf...)
	return &c
}

// WithDefault returns a copy of s carrying the default value v.
func (s *Schema) WithDefault(v any) *Schema {
	c := s.Clone()
	c.Default, c.HasDefault = v, true
	return c
}

// Float64 returns a pointer to v, handy for Minimum and Maximum.
func Float64(v float64) *float64 { return &v }

func escape(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, name[i])
		}
	}
	return string(out)
}
