package jsonschema

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	j "github.com/goccy/go-json"
)

// SchemaExportError reports a type that cannot be rendered into the exported
// document. No partial document is produced when it is returned.
type SchemaExportError struct {
	Type   string
	Reason string
	Err    error
}

func (e *SchemaExportError) Error() string {
	msg := "jsonschema: cannot export " + e.Type + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaExportError) Unwrap() error { return e.Err }

// Meta carries the document-level annotations.
type Meta struct {
	ID          string
	Title       string
	Description string
}

// Document is a self-contained schema: the root node plus every named
// definition it reaches.
type Document struct {
	Meta
	Root *Schema
	Defs map[string]*Schema
}

// Export hoists every named node reachable from root into $defs, replaces it
// with a $ref and verifies that every reference resolves. The root itself is
// inlined even when named.
func Export(root *Schema, meta Meta) (*Document, error) {
	if root == nil {
		return nil, &SchemaExportError{Type: "<root>", Reason: "nil schema"}
	}
	x := &exporter{defs: map[string]*Schema{}, seen: map[*Schema]string{}}
	inlined, err := x.inline(root)
	if err != nil {
		return nil, err
	}
	inlined.Name = ""
	if meta.Title != "" {
		inlined.Title = ""
	}
	if meta.Description != "" {
		inlined.Description = ""
	}
	doc := &Document{Meta: meta, Root: inlined, Defs: x.defs}
	if err := doc.checkRefs(); err != nil {
		return nil, err
	}
	return doc, nil
}

type exporter struct {
	defs map[string]*Schema
	// seen maps original named nodes to the canonical bytes of their hoisted
	// form so the same node is only processed once.
	seen map[*Schema]string
	busy map[string]bool
}

// inline returns a copy of s whose children have been hoisted.
func (x *exporter) inline(s *Schema) (*Schema, error) {
	c := s.Clone()
	c.Target = nil
	for name, p := range c.Properties {
		r, err := x.visit(p)
		if err != nil {
			return nil, err
		}
		c.Properties[name] = r
	}
	if c.Items != nil {
		r, err := x.visit(c.Items)
		if err != nil {
			return nil, err
		}
		c.Items = r
	}
	if ap, ok := c.AdditionalProperties.(*Schema); ok && ap != nil {
		r, err := x.visit(ap)
		if err != nil {
			return nil, err
		}
		c.AdditionalProperties = r
	}
	for i, u := range c.AnyOf {
		r, err := x.visit(u)
		if err != nil {
			return nil, err
		}
		c.AnyOf[i] = r
	}
	for i, u := range c.OneOf {
		r, err := x.visit(u)
		if err != nil {
			return nil, err
		}
		c.OneOf[i] = r
	}
	return c, nil
}

// visit handles a child position: named nodes and $ref targets are hoisted,
// anything else is inlined recursively.
func (x *exporter) visit(s *Schema) (*Schema, error) {
	if s == nil {
		return nil, nil
	}
	switch {
	case s.Target != nil:
		if err := x.hoist(s.Target); err != nil {
			return nil, err
		}
		ref := s.Clone()
		ref.Target = nil
		ref.Ref = DefRef(s.Target.Name)
		return ref, nil
	case s.Name != "":
		if err := x.hoist(s); err != nil {
			return nil, err
		}
		return &Schema{Ref: DefRef(s.Name)}, nil
	default:
		return x.inline(s)
	}
}

func (x *exporter) hoist(s *Schema) error {
	if s.Name == "" {
		return &SchemaExportError{Type: "<anonymous>", Reason: "reference target has no name"}
	}
	if _, done := x.seen[s]; done {
		return nil
	}
	if x.busy == nil {
		x.busy = map[string]bool{}
	}
	if x.busy[s.Name] {
		// Recursive reference; the definition is completed by the outer call.
		return nil
	}
	x.busy[s.Name] = true
	defer delete(x.busy, s.Name)

	def, err := x.inline(s)
	if err != nil {
		return err
	}
	def.Name = ""
	if def.Title == "" {
		def.Title = s.Name
	}
	b, err := def.MarshalJSON()
	if err != nil {
		return &SchemaExportError{Type: s.Name, Reason: "marshal definition", Err: err}
	}
	if prev, ok := x.defs[s.Name]; ok {
		pb, _ := prev.MarshalJSON()
		if !bytes.Equal(pb, b) {
			return &SchemaExportError{Type: s.Name, Reason: "conflicting definitions"}
		}
	} else {
		x.defs[s.Name] = def
	}
	x.seen[s] = string(b)
	return nil
}

func (d *Document) checkRefs() error {
	var missing []string
	var walk func(s *Schema)
	walk = func(s *Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			name, ok := strings.CutPrefix(s.Ref, "#/$defs/")
			name = strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
			if _, found := d.Defs[name]; !ok || !found {
				missing = append(missing, s.Ref)
			}
		}
		for _, p := range s.Properties {
			walk(p)
		}
		walk(s.Items)
		if ap, ok := s.AdditionalProperties.(*Schema); ok {
			walk(ap)
		}
		for _, u := range s.AnyOf {
			walk(u)
		}
		for _, u := range s.OneOf {
			walk(u)
		}
	}
	walk(d.Root)
	for _, def := range d.Defs {
		walk(def)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaExportError{Type: missing[0], Reason: fmt.Sprintf("unresolved reference (%d total)", len(missing))}
	}
	return nil
}

// DefNames returns the definition names in sorted order.
func (d *Document) DefNames() []string {
	names := make([]string, 0, len(d.Defs))
	for n := range d.Defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON emits the document: dialect, id, title and description first,
// then the root keywords, then $defs sorted by name.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := &objWriter{}
	w.open()
	head := []struct{ k, v string }{
		{"$schema", Dialect},
		{"$id", d.ID},
		{"title", d.Title},
		{"description", d.Description},
	}
	for _, h := range head {
		if h.v == "" {
			continue
		}
		if err := w.value(h.k, h.v); err != nil {
			return nil, err
		}
	}
	if err := d.Root.writeFields(w); err != nil {
		return nil, err
	}
	if len(d.Defs) > 0 {
		w.key("$defs")
		w.open()
		for _, name := range d.DefNames() {
			if err := w.schema(name, d.Defs[name]); err != nil {
				return nil, err
			}
		}
		w.close()
	}
	w.close()
	return w.bytes(), nil
}

// MarshalIndent renders the document with two-space indentation and a
// trailing newline.
func (d *Document) MarshalIndent() ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
