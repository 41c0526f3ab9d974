// Package codec holds wire/domain codecs for scalar values whose JSON form is
// a string.
package codec

import (
	"context"
	"time"

	"github.com/karstenskyt/osti/schema"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and
// time.Time. Decoding also accepts offset-less timestamps as UTC. Encoding
// keeps the value's own offset and nanosecond precision.
func TimeRFC3339() schema.Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		it := schema.NewIssue("/", schema.CodeInvalidFormat, map[string]any{"format": "RFC 3339 timestamp", "value": a})
		it.Cause = err
		return time.Time{}, schema.Issues{it}
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", schema.SerializationErrorf("/", "zero time")
	}
	return b.Format(time.RFC3339Nano), nil
}

// naiveLayouts accept ISO 8601 timestamps written without a zone offset,
// such as Python's datetime.isoformat() on a naive value. They are read as
// UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2, nil
	}
	for _, layout := range naiveLayouts {
		if t2, err2 := time.ParseInLocation(layout, s, time.UTC); err2 == nil {
			return t2, nil
		}
	}
	return time.Time{}, err
}
