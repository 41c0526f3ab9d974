package dsl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karstenskyt/osti/codec"
	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// Codec builds a Schema[B] whose wire side is parsed by in and converted with
// c. project supplies the JSON Schema; when nil, in's projection is used.
func Codec[A, B any](in schema.Schema[A], c schema.Codec[A, B], project func() (*js.Schema, error)) schema.Schema[B] {
	if project == nil {
		project = in.JSONSchema
	}
	return &codecSchema[A, B]{in: in, c: c, project: project}
}

type codecSchema[A, B any] struct {
	in      schema.Schema[A]
	c       schema.Codec[A, B]
	project func() (*js.Schema, error)
}

func (s *codecSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	a, err := s.in.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	return s.c.Decode(ctx, a)
}

func (s *codecSchema[A, B]) Encode(ctx context.Context, v B) (any, error) {
	a, err := s.c.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.in.Encode(ctx, a)
}

func (s *codecSchema[A, B]) JSONSchema() (*js.Schema, error) { return s.project() }

// UUID returns a schema for canonical UUID strings.
func UUID() schema.Schema[uuid.UUID] {
	return Codec(String(), codec.UUID(), func() (*js.Schema, error) {
		return &js.Schema{Type: "string", Format: "uuid"}, nil
	})
}

// Time returns a schema for RFC 3339 timestamps.
func Time() schema.Schema[time.Time] {
	return Codec(String(), codec.TimeRFC3339(), func() (*js.Schema, error) {
		return &js.Schema{Type: "string", Format: "date-time"}, nil
	})
}

// UUIDOf and TimeOf adapt UUID and Time for Field.
func UUIDOf() AnyAdapter { return SchemaOf(UUID()) }
func TimeOf() AnyAdapter { return SchemaOf(Time()) }

// NewUUID is a DefaultFunc generator producing a fresh random identifier.
func NewUUID() any { return uuid.NewString() }
