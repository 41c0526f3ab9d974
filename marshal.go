package osti

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"
)

// Marshal renders an entity as compact JSON with every declared field in
// declaration order.
func Marshal(ctx context.Context, v any) ([]byte, error) {
	tree, err := Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return j.Marshal(tree)
}

// MarshalIndent is Marshal with two-space indentation and a trailing newline.
func MarshalIndent(ctx context.Context, v any) ([]byte, error) {
	raw, err := Marshal(ctx, v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
