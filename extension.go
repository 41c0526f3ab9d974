package osti

import (
	"context"
	"fmt"
	"maps"
	"reflect"

	"github.com/karstenskyt/osti/dsl"
	"github.com/karstenskyt/osti/schema"
)

// ValueKind identifies which alternative an ExtensionValue holds.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueString
	ValueInteger
	ValueFloat
	ValueBoolean
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueInteger:
		return "integer"
	case ValueFloat:
		return "float"
	case ValueBoolean:
		return "boolean"
	case ValueObject:
		return "object"
	}
	return "none"
}

// ExtensionValue holds at most one typed value. On the wire it is flattened
// into the value_string, value_integer, value_float, value_boolean and
// value_object fields of its Extension.
type ExtensionValue struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
	o    map[string]any
}

// StringValue returns a value holding s.
func StringValue(s string) ExtensionValue { return ExtensionValue{kind: ValueString, s: s} }

// IntegerValue returns a value holding i.
func IntegerValue(i int64) ExtensionValue { return ExtensionValue{kind: ValueInteger, i: i} }

// FloatValue returns a value holding f.
func FloatValue(f float64) ExtensionValue { return ExtensionValue{kind: ValueFloat, f: f} }

// BooleanValue returns a value holding b.
func BooleanValue(b bool) ExtensionValue { return ExtensionValue{kind: ValueBoolean, b: b} }

// ObjectValue copies o, normalizing numbers the way decoding does so the
// value survives a JSON round trip unchanged.
func ObjectValue(o map[string]any) ExtensionValue {
	if o == nil {
		return ExtensionValue{kind: ValueObject, o: map[string]any{}}
	}
	if norm, err := dsl.MapAny().Parse(context.Background(), o); err == nil {
		return ExtensionValue{kind: ValueObject, o: norm}
	}
	return ExtensionValue{kind: ValueObject, o: maps.Clone(o)}
}

// Kind reports the populated alternative.
func (v ExtensionValue) Kind() ValueKind { return v.kind }

// AsString returns the string value and whether v holds one.
func (v ExtensionValue) AsString() (string, bool) { return v.s, v.kind == ValueString }

// AsInteger returns the integer value and whether v holds one.
func (v ExtensionValue) AsInteger() (int64, bool) { return v.i, v.kind == ValueInteger }

// AsFloat returns the float value and whether v holds one.
func (v ExtensionValue) AsFloat() (float64, bool) { return v.f, v.kind == ValueFloat }

// AsBoolean returns the boolean value and whether v holds one.
func (v ExtensionValue) AsBoolean() (bool, bool) { return v.b, v.kind == ValueBoolean }

// AsObject returns the object value and whether v holds one. The map is
// shared with v.
func (v ExtensionValue) AsObject() (map[string]any, bool) { return v.o, v.kind == ValueObject }

// Equal reports whether both values hold the same alternative and content.
func (v ExtensionValue) Equal(o ExtensionValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.s == o.s
	case ValueInteger:
		return v.i == o.i
	case ValueFloat:
		return v.f == o.f
	case ValueBoolean:
		return v.b == o.b
	case ValueObject:
		return reflect.DeepEqual(v.o, o.o)
	}
	return true
}

// Extension is a FHIR-style attachment for data the core schema does not
// cover. URL identifies the extension definition.
type Extension struct {
	URL   string
	Name  *string
	Value ExtensionValue
}

// extensionWire is the flattened wire shape of Extension.
type extensionWire struct {
	URL          string         `json:"url"`
	Name         *string        `json:"name"`
	ValueString  *string        `json:"value_string"`
	ValueInteger *int           `json:"value_integer"`
	ValueFloat   *float64       `json:"value_float"`
	ValueBoolean *bool          `json:"value_boolean"`
	ValueObject  map[string]any `json:"value_object"`
}

func (w extensionWire) populated() []string {
	var set []string
	if w.ValueString != nil {
		set = append(set, "value_string")
	}
	if w.ValueInteger != nil {
		set = append(set, "value_integer")
	}
	if w.ValueFloat != nil {
		set = append(set, "value_float")
	}
	if w.ValueBoolean != nil {
		set = append(set, "value_boolean")
	}
	if w.ValueObject != nil {
		set = append(set, "value_object")
	}
	return set
}

var extensionWireSchema = dsl.ObjectOf[extensionWire]().
	Named("Extension", "FHIR-style extension for custom data. Pick the value field that matches the data type; only one may be set.").
	Field("url", dsl.StringOf()).Required().Describe("URI identifying the extension definition").
	Field("name", dsl.StringOf().Nullable()).Describe("Human-readable extension name").
	Field("value_string", dsl.StringOf().Nullable()).
	Field("value_integer", dsl.IntOf().Nullable()).
	Field("value_float", dsl.FloatOf().Nullable()).
	Field("value_boolean", dsl.BoolOf().Nullable()).
	Field("value_object", dsl.MapAnyOf().Nullable()).
	Refine("exclusive-value", func(rc dsl.RuleCtx, w extensionWire) []schema.Issue {
		if set := w.populated(); len(set) > 1 {
			return []schema.Issue{rc.Ref.Issue(schema.CodeExclusiveValue, "fields", set)}
		}
		return nil
	}).
	MustBind()

// ExtensionSchema validates and encodes Extension.
var ExtensionSchema schema.Schema[Extension] = dsl.Codec[extensionWire, Extension](extensionWireSchema, extensionCodec{}, nil)

type extensionCodec struct{}

func (extensionCodec) Decode(ctx context.Context, w extensionWire) (Extension, error) {
	e := Extension{URL: w.URL, Name: w.Name}
	switch {
	case w.ValueString != nil:
		e.Value = StringValue(*w.ValueString)
	case w.ValueInteger != nil:
		e.Value = IntegerValue(int64(*w.ValueInteger))
	case w.ValueFloat != nil:
		e.Value = FloatValue(*w.ValueFloat)
	case w.ValueBoolean != nil:
		e.Value = BooleanValue(*w.ValueBoolean)
	case w.ValueObject != nil:
		e.Value = ExtensionValue{kind: ValueObject, o: w.ValueObject}
	}
	return e, nil
}

func (extensionCodec) Encode(ctx context.Context, e Extension) (extensionWire, error) {
	w := extensionWire{URL: e.URL, Name: e.Name}
	switch e.Value.kind {
	case ValueNone:
	case ValueString:
		w.ValueString = &e.Value.s
	case ValueInteger:
		i := int(e.Value.i)
		w.ValueInteger = &i
	case ValueFloat:
		w.ValueFloat = &e.Value.f
	case ValueBoolean:
		w.ValueBoolean = &e.Value.b
	case ValueObject:
		if e.Value.o == nil {
			w.ValueObject = map[string]any{}
		} else {
			w.ValueObject = e.Value.o
		}
	default:
		return w, schema.SerializationErrorf("/", "unknown extension value kind %d", int(e.Value.kind))
	}
	return w, nil
}

// String renders the extension for diagnostics.
func (e Extension) String() string {
	return fmt.Sprintf("Extension(%s, %s)", e.URL, e.Value.kind)
}
