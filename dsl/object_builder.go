package dsl

import (
	"context"
	"fmt"

	"github.com/karstenskyt/osti/schema"
)

// ObjectOf returns a typed object builder bound to struct T. Fields are kept
// in declaration order, which drives issue order, encoding order and the
// order of JSON Schema properties.
func ObjectOf[T any]() *ObjectBuilder[T] {
	return &ObjectBuilder[T]{index: map[string]int{}}
}

// ObjectBuilder accumulates field declarations for ObjectOf.
type ObjectBuilder[T any] struct {
	name   string
	desc   string
	fields []fieldDef
	index  map[string]int
	rules  []typedRule[T]
	errs   []error
}

type fieldDef struct {
	name     string
	ad       AnyAdapter
	required bool
	desc     string
	// hasDefault marks a static default, exported to JSON Schema.
	hasDefault bool
	defaultVal any
	// defaultFn produces a fresh wire value per parse; not exported.
	defaultFn func() any
}

// FieldStep is returned by Field to configure the field just declared.
type FieldStep[T any] struct {
	b   *ObjectBuilder[T]
	idx int
}

// Named marks the object as a named definition (exported under $defs).
func (b *ObjectBuilder[T]) Named(name, desc string) *ObjectBuilder[T] {
	b.name, b.desc = name, desc
	return b
}

// Field registers a field and returns a step for chaining.
func (b *ObjectBuilder[T]) Field(name string, ad AnyAdapter) *FieldStep[T] {
	if _, dup := b.index[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q declared twice", name))
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, fieldDef{name: name, ad: ad})
	return &FieldStep[T]{b: b, idx: len(b.fields) - 1}
}

// Refine registers a typed rule run after the value has been built.
func (b *ObjectBuilder[T]) Refine(name string, fn func(RuleCtx, T) []schema.Issue) *ObjectBuilder[T] {
	if fn != nil {
		b.rules = append(b.rules, typedRule[T]{name: name, fn: fn})
	}
	return b
}

// Bind builds the schema and binds it to T.
func (b *ObjectBuilder[T]) Bind() (schema.Schema[T], error) { return bind(b) }

// MustBind is like Bind but panics on error.
func (b *ObjectBuilder[T]) MustBind() schema.Schema[T] {
	s, err := bind(b)
	if err != nil {
		panic(err)
	}
	return s
}

func (f *FieldStep[T]) def() *fieldDef { return &f.b.fields[f.idx] }

// Required marks the current field as required.
func (f *FieldStep[T]) Required() *FieldStep[T] { f.def().required = true; return f }

// Describe sets the field's JSON Schema description.
func (f *FieldStep[T]) Describe(desc string) *FieldStep[T] { f.def().desc = desc; return f }

// Default sets a wire value applied when the key is absent. It is parsed
// through the field schema and exported as the JSON Schema default.
func (f *FieldStep[T]) Default(v any) *FieldStep[T] {
	d := f.def()
	d.hasDefault, d.defaultVal = true, v
	return f
}

// DefaultFunc sets a generator for the wire value applied when the key is
// absent, evaluated on every parse.
func (f *FieldStep[T]) DefaultFunc(fn func() any) *FieldStep[T] { f.def().defaultFn = fn; return f }

// Forward helpers to keep chaining ergonomics.
func (f *FieldStep[T]) Field(name string, ad AnyAdapter) *FieldStep[T] { return f.b.Field(name, ad) }
func (f *FieldStep[T]) Named(name, desc string) *ObjectBuilder[T]     { return f.b.Named(name, desc) }
func (f *FieldStep[T]) Refine(name string, fn func(RuleCtx, T) []schema.Issue) *ObjectBuilder[T] {
	return f.b.Refine(name, fn)
}
func (f *FieldStep[T]) Bind() (schema.Schema[T], error) { return f.b.Bind() }
func (f *FieldStep[T]) MustBind() schema.Schema[T]      { return f.b.MustBind() }

// applyDefault returns the wire value for an absent key and whether one
// applies.
func (d *fieldDef) applyDefault() (any, bool) {
	switch {
	case d.defaultFn != nil:
		return d.defaultFn(), true
	case d.hasDefault:
		return cloneWire(d.defaultVal), true
	}
	return nil, false
}

// cloneWire copies default literals so parsed values never alias them.
func cloneWire(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneWire(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneWire(e)
		}
		return out
	}
	return v
}

// RuleCtx is passed to typed rules.
type RuleCtx struct {
	Ctx context.Context
	Opt schema.ParseOpt
	Ref schema.PathRef
}

type typedRule[T any] struct {
	name string
	fn   func(RuleCtx, T) []schema.Issue
}

func runTypedRules[T any](ctx context.Context, v T, rules []typedRule[T]) schema.Issues {
	var iss schema.Issues
	rc := RuleCtx{Ctx: ctx, Opt: schema.ParseOptFrom(ctx), Ref: schema.Root()}
	for _, tr := range rules {
		out := tr.fn(rc, v)
		if len(out) == 0 {
			continue
		}
		for _, it := range out {
			it.Rule = tr.name
			if it.Params == nil {
				it.Params = map[string]any{"rule": tr.name}
			} else if _, ok := it.Params["rule"]; !ok {
				it.Params["rule"] = tr.name
			}
			iss = schema.AppendIssues(iss, it)
		}
		if schema.IsFailFast(ctx) {
			return iss
		}
	}
	return iss
}
