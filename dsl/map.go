package dsl

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// MapAny returns a schema for free-form JSON objects. Nested numbers are
// normalized to int64 when integral and float64 otherwise so decoded trees
// compare equal regardless of the decoder that produced them.
func MapAny() schema.Schema[map[string]any] { return mapAnySchema{} }

// MapAnyOf adapts MapAny for Field.
func MapAnyOf() AnyAdapter { return SchemaOf(MapAny()) }

type mapAnySchema struct{}

func (mapAnySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	if o, ok := v.(*schema.Object); ok {
		v = schema.Plain(o)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, schema.Issues{schema.TypeMismatch("/", "object", v)}
	}
	out, err := normalizeTree(m, "")
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (mapAnySchema) Encode(ctx context.Context, v map[string]any) (any, error) {
	if v == nil {
		return nil, schema.SerializationErrorf("/", "nil object")
	}
	out, err := normalizeTree(v, "")
	if err != nil {
		if iss, ok := schema.AsIssues(err); ok && len(iss) > 0 {
			return nil, schema.SerializationErrorf(iss[0].Path, "%s", iss[0].Message)
		}
		return nil, err
	}
	return out, nil
}

func (mapAnySchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "object"}, nil }

func normalizeTree(v any, path string) (any, error) {
	switch x := v.(type) {
	case nil, string, bool:
		return x, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var iss schema.Issues
		for _, k := range keys {
			nv, err := normalizeTree(x[k], schema.Child(pathOrRoot(path), k))
			if err != nil {
				iss = schema.AppendIssues(iss, schema.IssuesFromErr(path, err)...)
				continue
			}
			out[k] = nv
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		var iss schema.Issues
		for i, e := range x {
			nv, err := normalizeTree(e, path+"/"+strconv.Itoa(i))
			if err != nil {
				iss = schema.AppendIssues(iss, schema.IssuesFromErr(path, err)...)
				continue
			}
			out[i] = nv
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, schema.Issues{schema.TypeMismatch(pathOrRoot(path), "number", x)}
		}
		return normalizeFloat(f), nil
	default:
		if i, ok := v.(int64); ok {
			return i, nil
		}
		if f, ok := schema.AsFloat(v); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, schema.Issues{schema.TypeMismatch(pathOrRoot(path), "finite number", v)}
			}
			return normalizeFloat(f), nil
		}
		return nil, schema.Issues{schema.TypeMismatch(pathOrRoot(path), "JSON value", v)}
	}
}

// normalizeFloat maps integral values that float64 represents exactly to
// int64, so 2, 2.0 and json.Number("2") all decode to the same value.
func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
