package dsl

import (
	"context"
	"slices"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// EnumSchema is a closed vocabulary of string-backed values. It exports as a
// named definition.
type EnumSchema[E ~string] struct {
	name   string
	desc   string
	values []E
}

// Enum returns a closed enumeration schema named name whose members are
// values, in declaration order.
func Enum[E ~string](name string, values ...E) *EnumSchema[E] {
	return &EnumSchema[E]{name: name, values: slices.Clone(values)}
}

// EnumOf adapts an enumeration for Field.
func EnumOf[E ~string](name string, values ...E) AnyAdapter { return SchemaOf[E](Enum(name, values...)) }

// Describe sets the JSON Schema description.
func (e *EnumSchema[E]) Describe(desc string) *EnumSchema[E] { e.desc = desc; return e }

// Values returns the members in declaration order.
func (e *EnumSchema[E]) Values() []E { return slices.Clone(e.values) }

// Contains reports membership.
func (e *EnumSchema[E]) Contains(v E) bool { return slices.Contains(e.values, v) }

func (e *EnumSchema[E]) allowed() []string {
	out := make([]string, len(e.values))
	for i, v := range e.values {
		out[i] = string(v)
	}
	return out
}

func (e *EnumSchema[E]) Parse(ctx context.Context, v any) (E, error) {
	s, ok := v.(string)
	if !ok {
		return "", schema.Issues{schema.TypeMismatch("/", "string", v)}
	}
	if !e.Contains(E(s)) {
		return "", schema.Issues{schema.NewIssue("/", schema.CodeInvalidEnum, map[string]any{
			"value":   s,
			"allowed": e.allowed(),
		})}
	}
	return E(s), nil
}

func (e *EnumSchema[E]) Encode(ctx context.Context, v E) (any, error) {
	if !e.Contains(v) {
		return nil, schema.SerializationErrorf("/", "%q is not a %s", string(v), e.name)
	}
	return string(v), nil
}

func (e *EnumSchema[E]) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = string(v)
	}
	return &js.Schema{Name: e.name, Title: e.name, Description: e.desc, Type: "string", Enum: vals}, nil
}
