package dsl

import (
	"context"
	"math"
	"strconv"
	"strings"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// String returns the string schema. Non-string input fails with
// type_mismatch; no coercion from numbers or booleans takes place.
func String() schema.Schema[string] { return stringSchema{} }

// Bool returns the boolean schema. The strings "true" and "false" are
// accepted as booleans.
func Bool() schema.Schema[bool] { return boolSchema{} }

// Int returns the integer schema. Integral floats and numeric strings are
// accepted; fractional values fail with type_mismatch.
func Int() schema.Schema[int] { return intSchema{} }

// Float returns the number schema. Numeric strings are accepted.
func Float() schema.Schema[float64] { return floatSchema{} }

// StringOf, BoolOf, IntOf and FloatOf adapt the primitives for Field.
func StringOf() AnyAdapter { return SchemaOf(String()) }
func BoolOf() AnyAdapter   { return SchemaOf(Bool()) }
func IntOf() AnyAdapter    { return SchemaOf(Int()) }
func FloatOf() AnyAdapter  { return SchemaOf(Float()) }

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", schema.Issues{schema.TypeMismatch("/", "string", v)}
	}
	return s, nil
}

func (stringSchema) Encode(ctx context.Context, v string) (any, error) { return v, nil }

func (stringSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, schema.Issues{schema.TypeMismatch("/", "boolean", v)}
}

func (boolSchema) Encode(ctx context.Context, v bool) (any, error) { return v, nil }

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

type intSchema struct{}

func (intSchema) Parse(ctx context.Context, v any) (int, error) {
	if s, ok := v.(string); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return int(i), nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			v = f
		}
	}
	if _, isBool := v.(bool); !isBool {
		if i, ok := schema.AsInt(v); ok {
			return int(i), nil
		}
	}
	return 0, schema.Issues{schema.TypeMismatch("/", "integer", v)}
}

func (intSchema) Encode(ctx context.Context, v int) (any, error) { return v, nil }

func (intSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

type floatSchema struct{}

func (floatSchema) Parse(ctx context.Context, v any) (float64, error) {
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, nil
		}
	}
	if _, isBool := v.(bool); !isBool {
		if f, ok := schema.AsFloat(v); ok {
			return f, nil
		}
	}
	return 0, schema.Issues{schema.TypeMismatch("/", "number", v)}
}

func (floatSchema) Encode(ctx context.Context, v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, schema.SerializationErrorf("/", "%v is not representable in JSON", v)
	}
	return v, nil
}

func (floatSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
