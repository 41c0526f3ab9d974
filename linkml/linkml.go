// Package linkml renders an exported JSON Schema document as a LinkML schema
// (YAML), the secondary modeling artifact published next to the JSON Schema.
package linkml

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	js "github.com/karstenskyt/osti/jsonschema"
)

// Schema is the subset of the LinkML metamodel the converter emits. Maps
// render with sorted keys, so output is deterministic.
type Schema struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Title         string            `yaml:"title,omitempty"`
	Description   string            `yaml:"description,omitempty"`
	Version       string            `yaml:"version,omitempty"`
	Prefixes      map[string]string `yaml:"prefixes"`
	DefaultPrefix string            `yaml:"default_prefix"`
	DefaultRange  string            `yaml:"default_range"`
	Imports       []string          `yaml:"imports"`
	Classes       map[string]*Class `yaml:"classes,omitempty"`
	Enums         map[string]*Enum  `yaml:"enums,omitempty"`
}

type Class struct {
	Description string           `yaml:"description,omitempty"`
	TreeRoot    bool             `yaml:"tree_root,omitempty"`
	ClassURI    string           `yaml:"class_uri,omitempty"`
	Attributes  map[string]*Slot `yaml:"attributes,omitempty"`
}

type Slot struct {
	Description string `yaml:"description,omitempty"`
	Range       string `yaml:"range,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Multivalued bool   `yaml:"multivalued,omitempty"`
	IfAbsent    string `yaml:"ifabsent,omitempty"`
}

type Enum struct {
	Description       string                      `yaml:"description,omitempty"`
	PermissibleValues map[string]PermissibleValue `yaml:"permissible_values"`
}

type PermissibleValue struct {
	Description string `yaml:"description,omitempty"`
}

// Options names the generated schema.
type Options struct {
	// Name is the LinkML schema name, e.g. "osti".
	Name string
	// RootClass names the class built from the document root.
	RootClass string
	Version   string
}

// ConversionError reports a JSON Schema construct with no LinkML rendering.
type ConversionError struct {
	Path   string
	Reason string
}

func (e *ConversionError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return "linkml: " + path + ": " + e.Reason
}

// anyClass is the range of free-form objects.
const anyClass = "Any"

// Convert maps $defs objects to classes, string enumerations to enums and
// properties to attributes. The document root becomes RootClass, marked as
// the tree root.
func Convert(doc *js.Document, opt Options) (*Schema, error) {
	if doc == nil || doc.Root == nil {
		return nil, &ConversionError{Reason: "empty document"}
	}
	if opt.Name == "" || opt.RootClass == "" {
		return nil, &ConversionError{Reason: "schema and root class names are required"}
	}
	id := doc.ID
	if id == "" {
		id = "https://w3id.org/" + opt.Name
	}
	out := &Schema{
		ID:            id,
		Name:          opt.Name,
		Title:         doc.Title,
		Description:   doc.Description,
		Version:       opt.Version,
		Prefixes:      map[string]string{"linkml": "https://w3id.org/linkml/", opt.Name: strings.TrimSuffix(id, "schema.json")},
		DefaultPrefix: opt.Name,
		DefaultRange:  "string",
		Imports:       []string{"linkml:types"},
		Classes:       map[string]*Class{},
		Enums:         map[string]*Enum{},
	}
	c := &converter{out: out}
	for _, name := range doc.DefNames() {
		if err := c.definition(name, doc.Defs[name]); err != nil {
			return nil, err
		}
	}
	root, err := c.class("", doc.Root)
	if err != nil {
		return nil, err
	}
	root.TreeRoot = true
	if _, taken := out.Classes[opt.RootClass]; taken {
		return nil, &ConversionError{Reason: "root class " + opt.RootClass + " collides with a definition"}
	}
	out.Classes[opt.RootClass] = root
	if c.usesAny {
		out.Classes[anyClass] = &Class{ClassURI: "linkml:Any", Description: "Free-form object."}
	}
	return out, nil
}

type converter struct {
	out     *Schema
	usesAny bool
}

func (c *converter) definition(name string, s *js.Schema) error {
	path := "/$defs/" + name
	switch {
	case len(s.Enum) > 0:
		e := &Enum{Description: s.Description, PermissibleValues: make(map[string]PermissibleValue, len(s.Enum))}
		for _, v := range s.Enum {
			str, ok := v.(string)
			if !ok {
				return &ConversionError{Path: path, Reason: fmt.Sprintf("non-string enum member %v", v)}
			}
			e.PermissibleValues[str] = PermissibleValue{}
		}
		c.out.Enums[name] = e
	case s.Type == "object":
		cl, err := c.class(path, s)
		if err != nil {
			return err
		}
		c.out.Classes[name] = cl
	default:
		return &ConversionError{Path: path, Reason: "unsupported definition type " + s.Type}
	}
	return nil
}

func (c *converter) class(path string, s *js.Schema) (*Class, error) {
	cl := &Class{Description: s.Description, Attributes: make(map[string]*Slot, len(s.Properties))}
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	names := make([]string, 0, len(s.Properties))
	for n := range s.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		slot, err := c.slot(path+"/properties/"+n, s.Properties[n])
		if err != nil {
			return nil, err
		}
		slot.Required = required[n]
		cl.Attributes[n] = slot
	}
	return cl, nil
}

func (c *converter) slot(path string, s *js.Schema) (*Slot, error) {
	slot := &Slot{Description: s.Description}
	if s.HasDefault && s.Default != nil {
		if str, ok := s.Default.(string); ok {
			slot.IfAbsent = "string(" + str + ")"
		}
	}
	t := s
	if len(s.AnyOf) > 0 {
		var nonNull []*js.Schema
		for _, alt := range s.AnyOf {
			if alt.Type != "null" {
				nonNull = append(nonNull, alt)
			}
		}
		if len(nonNull) != 1 {
			return nil, &ConversionError{Path: path, Reason: "union of several types"}
		}
		t = nonNull[0]
	}
	if t.Type == "array" {
		if t.Items == nil {
			return nil, &ConversionError{Path: path, Reason: "array without items"}
		}
		slot.Multivalued = true
		t = t.Items
	}
	r, err := c.rangeOf(path, t)
	if err != nil {
		return nil, err
	}
	slot.Range = r
	return slot, nil
}

func (c *converter) rangeOf(path string, s *js.Schema) (string, error) {
	if s.Ref != "" {
		name, ok := strings.CutPrefix(s.Ref, "#/$defs/")
		if !ok {
			return "", &ConversionError{Path: path, Reason: "non-local reference " + s.Ref}
		}
		return name, nil
	}
	switch s.Type {
	case "string":
		if s.Format == "date-time" {
			return "datetime", nil
		}
		return "string", nil
	case "integer":
		return "integer", nil
	case "number":
		return "float", nil
	case "boolean":
		return "boolean", nil
	case "object":
		c.usesAny = true
		return anyClass, nil
	}
	return "", &ConversionError{Path: path, Reason: "unsupported type " + s.Type}
}

// Marshal renders s as YAML with two-space indentation.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("linkml: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("linkml: encode: %w", err)
	}
	return buf.Bytes(), nil
}
