package jsonschema

import (
	"bytes"
	"sort"

	j "github.com/goccy/go-json"
)

// MarshalJSON writes the node with a fixed key order and properties in
// declaration order so equal schemas always produce equal bytes.
func (s *Schema) MarshalJSON() ([]byte, error) {
	w := &objWriter{}
	if err := s.write(w); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

func (s *Schema) write(w *objWriter) error {
	w.open()
	if err := s.writeFields(w); err != nil {
		return err
	}
	w.close()
	return nil
}

func (s *Schema) writeFields(w *objWriter) error {
	fields := []struct {
		key  string
		val  any
		emit bool
	}{
		{"$ref", s.Ref, s.Ref != ""},
		{"title", s.Title, s.Title != ""},
		{"description", s.Description, s.Description != ""},
		{"type", s.Type, s.Type != ""},
		{"format", s.Format, s.Format != ""},
		{"enum", s.Enum, len(s.Enum) > 0},
		{"default", s.Default, s.HasDefault},
		{"minimum", s.Minimum, s.Minimum != nil},
		{"maximum", s.Maximum, s.Maximum != nil},
	}
	for _, f := range fields {
		if !f.emit {
			continue
		}
		if err := w.value(f.key, f.val); err != nil {
			return err
		}
	}
	if len(s.Properties) > 0 {
		w.key("properties")
		w.open()
		for _, name := range s.orderedProperties() {
			if err := w.schema(name, s.Properties[name]); err != nil {
				return err
			}
		}
		w.close()
	}
	if len(s.Required) > 0 {
		if err := w.value("required", s.Required); err != nil {
			return err
		}
	}
	switch ap := s.AdditionalProperties.(type) {
	case nil:
	case *Schema:
		if err := w.schema("additionalProperties", ap); err != nil {
			return err
		}
	default:
		if err := w.value("additionalProperties", ap); err != nil {
			return err
		}
	}
	if s.Items != nil {
		if err := w.schema("items", s.Items); err != nil {
			return err
		}
	}
	for _, u := range []struct {
		key  string
		list []*Schema
	}{{"anyOf", s.AnyOf}, {"oneOf", s.OneOf}} {
		if len(u.list) == 0 {
			continue
		}
		w.key(u.key)
		w.buf.WriteByte('[')
		for i, c := range u.list {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := c.write(&objWriter{buf: w.buf}); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	}
	return nil
}

func (s *Schema) orderedProperties() []string {
	out := make([]string, 0, len(s.Properties))
	seen := make(map[string]struct{}, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	var rest []string
	for name := range s.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// objWriter emits one JSON object into a shared buffer, tracking whether a
// separator is needed before the next member.
type objWriter struct {
	buf  *bytes.Buffer
	more []bool
}

func (w *objWriter) bytes() []byte { return w.buf.Bytes() }

func (w *objWriter) open() {
	if w.buf == nil {
		w.buf = &bytes.Buffer{}
	}
	w.buf.WriteByte('{')
	w.more = append(w.more, false)
}

func (w *objWriter) close() {
	w.buf.WriteByte('}')
	w.more = w.more[:len(w.more)-1]
}

func (w *objWriter) key(k string) {
	top := len(w.more) - 1
	if w.more[top] {
		w.buf.WriteByte(',')
	}
	w.more[top] = true
	kb, _ := j.Marshal(k)
	w.buf.Write(kb)
	w.buf.WriteByte(':')
}

func (w *objWriter) value(k string, v any) error {
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	w.key(k)
	w.buf.Write(b)
	return nil
}

func (w *objWriter) schema(k string, s *Schema) error {
	w.key(k)
	if s == nil {
		w.buf.WriteString("true")
		return nil
	}
	return s.write(&objWriter{buf: w.buf})
}
