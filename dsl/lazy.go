package dsl

import (
	"context"
	"sync"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// Lazy returns a schema that resolves fn on first use. It allows recursive
// or forward declarations; in JSON Schema it always renders as a $ref to
// name. A resolver returning nil makes every operation fail, and export
// fails with *jsonschema.SchemaExportError.
func Lazy[T any](name string, fn func() schema.Schema[T]) schema.Schema[T] {
	return &lazySchema[T]{name: name, fn: fn}
}

type lazySchema[T any] struct {
	name string
	fn   func() schema.Schema[T]
	once sync.Once
	s    schema.Schema[T]
	busy bool
}

func (l *lazySchema[T]) resolve() schema.Schema[T] {
	l.once.Do(func() {
		if l.fn != nil {
			l.s = l.fn()
		}
	})
	return l.s
}

func (l *lazySchema[T]) Parse(ctx context.Context, v any) (T, error) {
	s := l.resolve()
	if s == nil {
		var zero T
		return zero, schema.Issues{{Path: "/", Code: schema.CodeParseError, Message: "unresolved schema " + l.name}}
	}
	return s.Parse(ctx, v)
}

func (l *lazySchema[T]) Encode(ctx context.Context, v T) (any, error) {
	s := l.resolve()
	if s == nil {
		return nil, schema.SerializationErrorf("/", "unresolved schema %s", l.name)
	}
	return s.Encode(ctx, v)
}

func (l *lazySchema[T]) JSONSchema() (*js.Schema, error) {
	s := l.resolve()
	if s == nil {
		return nil, &js.SchemaExportError{Type: l.name, Reason: "unresolved lazy reference"}
	}
	if l.busy {
		// Recursive use: the outer call produces the definition.
		return &js.Schema{Ref: js.DefRef(l.name)}, nil
	}
	l.busy = true
	defer func() { l.busy = false }()
	target, err := s.JSONSchema()
	if err != nil {
		return nil, err
	}
	if target.Name == "" {
		target = target.Clone()
		target.Name = l.name
	}
	return js.RefTo(target), nil
}
