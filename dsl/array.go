package dsl

import (
	"context"
	"strconv"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// ArraySchema is a list schema over an element schema.
type ArraySchema[E any] struct {
	elem schema.Schema[E]
}

// Array returns an array schema with the given element schema. Parsed and
// encoded lists are never nil.
func Array[E any](elem schema.Schema[E]) *ArraySchema[E] {
	return &ArraySchema[E]{elem: elem}
}

// ArrayOf adapts Array[E] for use in typed object builders.
// Example: Field("arrows", dsl.ArrayOf(arrowSchema)).Default([]any{})
func ArrayOf[E any](elem schema.Schema[E]) AnyAdapter { return SchemaOf[[]E](Array(elem)) }

func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	src, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]E); ok {
			src = make([]any, len(typed))
			for i := range typed {
				src[i] = typed[i]
			}
		} else {
			return nil, schema.Issues{schema.TypeMismatch("/", "array", v)}
		}
	}
	res := make([]E, 0, len(src))
	var iss schema.Issues
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			iss = schema.AppendIssues(iss, schema.Rebase("/"+strconv.Itoa(i), schema.IssuesFromErr("/", err))...)
			if schema.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		res = append(res, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (a *ArraySchema[E]) Encode(ctx context.Context, v []E) (any, error) {
	out := make([]any, 0, len(v))
	for i := range v {
		ev, err := a.elem.Encode(ctx, v[i])
		if err != nil {
			return nil, schema.RebaseSerialization("/"+strconv.Itoa(i), err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	if es != nil && es.Name != "" {
		es = js.RefTo(es)
	}
	return &js.Schema{Type: "array", Items: es}, nil
}
