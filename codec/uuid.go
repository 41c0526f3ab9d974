package codec

import (
	"context"

	"github.com/google/uuid"

	"github.com/karstenskyt/osti/schema"
)

// UUID returns a Codec between canonical UUID text and uuid.UUID. Decoding
// accepts any form uuid.Parse does; encoding is lowercase hyphenated.
func UUID() schema.Codec[string, uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	id, err := uuid.Parse(a)
	if err != nil {
		it := schema.NewIssue("/", schema.CodeInvalidFormat, map[string]any{"format": "uuid", "value": a})
		it.Cause = err
		return uuid.Nil, schema.Issues{it}
	}
	return id, nil
}

func (uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) {
	return b.String(), nil
}
