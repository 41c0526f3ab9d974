package codec

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/karstenskyt/osti/schema"
)

func TestUUID_RoundTripLowercase(t *testing.T) {
	c := UUID()
	ctx := context.Background()

	id, err := c.Decode(ctx, "3F2504E0-4F89-41D3-9A0C-0305E82C3301")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	out, err := c.Encode(ctx, id)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "3f2504e0-4f89-41d3-9a0c-0305e82c3301" {
		t.Fatalf("unexpected canonical form %s", out)
	}
}

func TestUUID_Fresh(t *testing.T) {
	id := uuid.New()
	out, _ := UUID().Encode(context.Background(), id)
	back, err := UUID().Decode(context.Background(), out)
	if err != nil || back != id {
		t.Fatalf("roundtrip failed: %v %v", back, err)
	}
}

func TestUUID_Invalid(t *testing.T) {
	_, err := UUID().Decode(context.Background(), "not-a-uuid")
	iss, ok := schema.AsIssues(err)
	if !ok || iss[0].Code != schema.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", err)
	}
}
