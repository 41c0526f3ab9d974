package dsl

import (
	"context"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper used by object
// builders. It keeps parse, encode and JSON Schema projection together so
// field wrappers (Nullable, InRange) can decorate all three.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	encode     func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
	nullable   bool
}

// SchemaOf adapts a strongly typed Schema[T] to an AnyAdapter.
func SchemaOf[T any](s schema.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		encode: func(ctx context.Context, v any) (any, error) {
			tv, ok := v.(T)
			if !ok {
				var zero T
				return nil, schema.SerializationErrorf("/", "expected %T, got %T", zero, v)
			}
			return s.Encode(ctx, tv)
		},
		jsonSchema: s.JSONSchema,
	}
}

// Nullable wraps an AnyAdapter to accept JSON null. A null input parses to
// nil, which binds to a nil pointer; JSON Schema renders anyOf [T, null] with
// a null default.
func Nullable(ad AnyAdapter) AnyAdapter {
	prevParse, prevEncode, prevJSON := ad.parse, ad.encode, ad.jsonSchema
	out := ad
	out.nullable = true
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return prevParse(ctx, v)
	}
	out.encode = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return prevEncode(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := prevJSON()
		if err != nil {
			return nil, err
		}
		return js.Optional(s), nil
	}
	return out
}

// Nullable enables fluent chaining: dsl.FloatOf().Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// InRange adds an inclusive numeric range check that only runs when enabled
// reports true for the options in effect. Out-of-range values fail with
// out_of_range; the bounds are not exported to JSON Schema.
func (ad AnyAdapter) InRange(lo, hi float64, enabled func(schema.ParseOpt) bool) AnyAdapter {
	prev := ad.parse
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		val, err := prev(ctx, v)
		if err != nil || val == nil {
			return val, err
		}
		if enabled != nil && !enabled(schema.ParseOptFrom(ctx)) {
			return val, nil
		}
		f, ok := schema.AsFloat(val)
		if ok && (f < lo || f > hi) {
			return nil, schema.Issues{schema.NewIssue("/", schema.CodeOutOfRange, map[string]any{
				"value": f,
				"range": rangeText(lo, hi),
			})}
		}
		return val, nil
	}
	return out
}

func rangeText(lo, hi float64) string {
	return "[" + formatFloat(lo) + ", " + formatFloat(hi) + "]"
}
