package dsl

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// typedObjectSchema projects wire objects onto struct T using key
// resolution (osti tag, json tag, field name).
type typedObjectSchema[T any] struct {
	name   string
	desc   string
	fields []fieldDef
	known  map[string]struct{}
	rules  []typedRule[T]
	t      reflect.Type
	ptr    bool
	// fieldIdx is aligned with fields: struct field index per declared key.
	fieldIdx []int
}

func bind[T any](b *ObjectBuilder[T]) (schema.Schema[T], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	rt := reflect.TypeFor[T]()
	ptr := false
	if rt.Kind() == reflect.Pointer {
		rt, ptr = rt.Elem(), true
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: ObjectOf[%s] requires a struct type", rt)
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := schema.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	s := &typedObjectSchema[T]{
		name:   b.name,
		desc:   b.desc,
		fields: append([]fieldDef(nil), b.fields...),
		known:  make(map[string]struct{}, len(b.fields)),
		rules:  append([]typedRule[T](nil), b.rules...),
		t:      rt,
		ptr:    ptr,
	}
	for _, f := range s.fields {
		i, ok := idxByName[f.name]
		if !ok {
			return nil, fmt.Errorf("dsl: field %q has no counterpart in %s", f.name, rt)
		}
		s.known[f.name] = struct{}{}
		s.fieldIdx = append(s.fieldIdx, i)
	}
	return s, nil
}

func policy(ctx context.Context) schema.UnknownPolicy {
	if p := schema.ParseOptFrom(ctx).UnknownKeys; p != schema.UnknownDefault {
		return p
	}
	return schema.UnknownStrip
}

// Parse validates every declared field, applies defaults, handles unknown
// keys and runs typed rules on the built value.
func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	if o, ok := v.(*schema.Object); ok {
		v = schema.Plain(o)
	}
	src, ok := v.(map[string]any)
	if !ok {
		return zero, schema.Issues{schema.TypeMismatch("/", "object", v)}
	}
	rv := reflect.New(s.t).Elem()
	var iss schema.Issues
	failFast := schema.IsFailFast(ctx)
	for i := range s.fields {
		f := &s.fields[i]
		base := schema.Child("/", f.name)
		raw, present := src[f.name]
		if !present {
			dv, ok := f.applyDefault()
			switch {
			case ok:
				raw = dv
			case f.required:
				iss = schema.AppendIssues(iss, schema.NewIssue(base, schema.CodeRequired, nil))
				if failFast {
					return zero, iss
				}
				continue
			default:
				continue
			}
		}
		val, err := f.ad.parse(ctx, raw)
		if err != nil {
			iss = schema.AppendIssues(iss, schema.Rebase(base, schema.IssuesFromErr("/", err))...)
			if failFast {
				return zero, iss
			}
			continue
		}
		if err := assign(rv.Field(s.fieldIdx[i]), val); err != nil {
			iss = schema.AppendIssues(iss, schema.Issue{Path: base, Code: schema.CodeTypeMismatch, Message: err.Error(), Cause: err})
		}
	}
	if policy(ctx) == schema.UnknownStrict {
		var unknown []string
		for k := range src {
			if _, known := s.known[k]; !known {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			iss = schema.AppendIssues(iss, schema.NewIssue(schema.Child("/", k), schema.CodeUnknownKey, map[string]any{"key": k}))
			if failFast {
				return zero, iss
			}
		}
	}
	if len(iss) > 0 {
		return zero, iss
	}
	out := s.wrap(rv)
	if len(s.rules) > 0 {
		if iss := runTypedRules(ctx, out, s.rules); len(iss) > 0 {
			return zero, iss
		}
	}
	return out, nil
}

func (s *typedObjectSchema[T]) wrap(rv reflect.Value) T {
	if s.ptr {
		p := reflect.New(s.t)
		p.Elem().Set(rv)
		return p.Interface().(T)
	}
	return rv.Interface().(T)
}

// assign stores a parsed value into a struct field, allocating pointers for
// optional fields.
func assign(fv reflect.Value, val any) error {
	if !fv.CanSet() {
		return nil
	}
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			fv.Set(reflect.Zero(fv.Type()))
		}
		return nil
	}
	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case fv.Kind() == reflect.Pointer && vv.Type().AssignableTo(fv.Type().Elem()):
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(vv)
		fv.Set(p)
	case fv.Kind() == reflect.Pointer && vv.Type().ConvertibleTo(fv.Type().Elem()):
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(vv.Convert(fv.Type().Elem()))
		fv.Set(p)
	case vv.Type().ConvertibleTo(fv.Type()):
		fv.Set(vv.Convert(fv.Type()))
	default:
		return fmt.Errorf("cannot bind %s to %s", vv.Type(), fv.Type())
	}
	return nil
}

// Encode emits every declared field in declaration order.
func (s *typedObjectSchema[T]) Encode(ctx context.Context, v T) (any, error) {
	rv := reflect.ValueOf(v)
	if s.ptr {
		if rv.IsNil() {
			return nil, schema.SerializationErrorf("/", "nil %s", s.t)
		}
		rv = rv.Elem()
	}
	out := schema.NewObject(len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]
		base := schema.Child("/", f.name)
		fv := rv.Field(s.fieldIdx[i])
		var val any
		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if !fv.IsNil() {
				val = fv.Elem().Interface()
			}
		case reflect.Slice:
			if fv.IsNil() {
				val = reflect.MakeSlice(fv.Type(), 0, 0).Interface()
			} else {
				val = fv.Interface()
			}
		case reflect.Map:
			if !fv.IsNil() {
				val = fv.Interface()
			}
		default:
			val = fv.Interface()
		}
		if val == nil {
			if !f.ad.nullable {
				return nil, schema.SerializationErrorf(base, "nil value for non-nullable field")
			}
			out.Set(f.name, nil)
			continue
		}
		ev, err := f.ad.encode(ctx, val)
		if err != nil {
			return nil, schema.RebaseSerialization(base, err)
		}
		out.Set(f.name, ev)
	}
	return out, nil
}

// JSONSchema projects the object; named objects become $defs entries on
// export.
func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{
		Name:        s.name,
		Title:       s.name,
		Description: s.desc,
		Type:        "object",
		Properties:  make(map[string]*js.Schema, len(s.fields)),
	}
	for i := range s.fields {
		f := &s.fields[i]
		ps, err := f.ad.jsonSchema()
		if err != nil {
			var xe *js.SchemaExportError
			if errors.As(err, &xe) {
				return nil, err
			}
			return nil, &js.SchemaExportError{Type: s.t.Name() + "." + f.name, Reason: "field schema", Err: err}
		}
		if ps == nil {
			return nil, &js.SchemaExportError{Type: s.t.Name() + "." + f.name, Reason: "field has no schema"}
		}
		if ps.Name != "" {
			ps = js.RefTo(ps)
		} else {
			ps = ps.Clone()
		}
		if f.desc != "" {
			ps.Description = f.desc
		}
		if f.hasDefault {
			ps.Default, ps.HasDefault = f.defaultVal, true
		}
		out.Properties[f.name] = ps
		out.PropertyOrder = append(out.PropertyOrder, f.name)
		if f.required {
			out.Required = append(out.Required, f.name)
		}
	}
	return out, nil
}
