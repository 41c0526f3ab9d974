package codec

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karstenskyt/osti/schema"
)

func TestTimeRFC3339_Codec_Basic(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeRFC3339_KeepsOffsetAndNanos(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2024-03-01T09:30:15.123456789+02:00"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("got %s want %s", out, in)
	}
}

func TestTimeRFC3339_NaiveAsUTC(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		out  string
	}{
		{"2024-03-01T10:00:00.123456", time.Date(2024, 3, 1, 10, 0, 0, 123456000, time.UTC), "2024-03-01T10:00:00.123456Z"},
		{"2024-03-01T10:00:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "2024-03-01T10:00:00Z"},
		{"2024-03-01 10:00:00.5", time.Date(2024, 3, 1, 10, 0, 0, 500000000, time.UTC), "2024-03-01T10:00:00.5Z"},
		{"2024-03-01 10:00:00+02:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), "2024-03-01T10:00:00+02:00"},
	}
	c := TimeRFC3339()
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := c.Decode(ctx, tt.in)
			if err != nil {
				t.Fatalf("decode err: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			out, err := c.Encode(ctx, got)
			if err != nil {
				t.Fatalf("encode err: %v", err)
			}
			if out != tt.out {
				t.Fatalf("encoded %s want %s", out, tt.out)
			}
		})
	}
}

func TestTimeRFC3339_Invalid(t *testing.T) {
	_, err := TimeRFC3339().Decode(context.Background(), "yesterday")
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != schema.CodeInvalidFormat {
		t.Fatalf("expected invalid_format issue, got %v", err)
	}
}

func TestTimeRFC3339_EncodeZero(t *testing.T) {
	_, err := TimeRFC3339().Encode(context.Background(), time.Time{})
	var se *schema.SerializationError
	if !errors.As(err, &se) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
}
