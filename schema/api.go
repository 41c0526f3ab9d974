// Package schema defines the contract shared by every schema in the module:
// parsing untyped input into typed values, encoding typed values back to
// wire form, projecting to JSON Schema, and the Issue-based error model.
package schema

import (
	"context"

	js "github.com/karstenskyt/osti/jsonschema"
)

// Schema parses, encodes and describes values of type T.
type Schema[T any] interface {
	// Parse converts an untyped tree (map[string]any, []any, string,
	// json.Number/float64/int, bool, nil) into T: coerce, apply defaults,
	// validate, refine. Failures are reported as Issues.
	Parse(ctx context.Context, v any) (T, error)
	// Encode projects T into its wire tree, re-checking the value against the
	// schema. Violations are reported as *SerializationError.
	Encode(ctx context.Context, v T) (any, error)
	// JSONSchema projects the schema into a JSON Schema node.
	JSONSchema() (*js.Schema, error)
}

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// Parse applies opts to ctx and parses v with s.
func Parse[T any](ctx context.Context, s Schema[T], v any, opts ...ParseOpt) (T, error) {
	if len(opts) > 0 {
		ctx = WithParseOpt(ctx, lastOpt(opts))
	}
	return s.Parse(ctx, v)
}

// SafeParse is Parse with the error narrowed to Issues.
func SafeParse[T any](ctx context.Context, s Schema[T], v any, opts ...ParseOpt) (T, Issues) {
	out, err := Parse(ctx, s, v, opts...)
	if err == nil {
		return out, nil
	}
	return out, IssuesFromErr("/", err)
}

// Is reports whether v satisfies s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}
