package schema

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"
)

// Object is an insertion-ordered JSON object produced by Encode. It marshals
// with its keys in the order they were set.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object with room for n keys.
func NewObject(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]any, n)}
}

// Set assigns k, appending it to the key order when new.
func (o *Object) Set(k string, v any) {
	if _, ok := o.vals[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
}

// Get returns the value stored under k.
func (o *Object) Get(k string) (any, bool) {
	v, ok := o.vals[k]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := j.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts an encoded tree into plain maps and slices, dropping key
// order. Useful for comparisons and for feeding Encode output back to Parse.
func Plain(v any) any {
	switch x := v.(type) {
	case *Object:
		m := make(map[string]any, len(x.keys))
		for _, k := range x.keys {
			m[k] = Plain(x.vals[k])
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}

// Marshal encodes v with s and renders compact JSON with declared key order.
func Marshal[T any](ctx context.Context, s Schema[T], v T) ([]byte, error) {
	tree, err := s.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return j.Marshal(tree)
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent[T any](ctx context.Context, s Schema[T], v T, prefix, indent string) ([]byte, error) {
	raw, err := Marshal(ctx, s, v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
