package engine_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/karstenskyt/osti/internal/engine"
)

func TestDecodeAny_Tree(t *testing.T) {
	v, err := engine.DecodeAny(engine.NewBytes([]byte(`{"a":[1,2.5,"x",true,null],"b":{"c":{}}}`)))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": []any{json.Number("1"), json.Number("2.5"), "x", true, nil},
		"b": map[string]any{"c": map[string]any{}},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("tree (-want +got):\n%s", diff)
	}
}

func TestDecodeAny_TrailingData(t *testing.T) {
	if _, err := engine.DecodeAny(engine.NewBytes([]byte(`{} {}`))); err == nil {
		t.Fatal("trailing value must be rejected")
	}
}

func TestDecodeAny_Truncated(t *testing.T) {
	if _, err := engine.DecodeAny(engine.NewBytes([]byte(`{"a":[1,`))); err == nil {
		t.Fatal("truncated input must fail")
	}
}

func TestEnforce_Duplicate(t *testing.T) {
	src := engine.WrapWithEnforcement(engine.NewBytes([]byte(`{"x":{"k":1,"k":2}}`)), engine.EnforceOptions{OnDuplicate: engine.DupError})
	_, err := engine.DecodeAny(src)
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" || ie.Path != "/x/k" {
		t.Fatalf("got %v", err)
	}
}

func TestEnforce_DuplicateWarn(t *testing.T) {
	var got []engine.SimpleIssue
	src := engine.WrapWithEnforcement(engine.NewBytes([]byte(`[{"k":1,"k":2}]`)), engine.EnforceOptions{
		OnDuplicate: engine.DupWarn,
		IssueSink:   func(si engine.SimpleIssue) { got = append(got, si) },
	})
	if _, err := engine.DecodeAny(src); err != nil {
		t.Fatalf("warnings must not fail: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/0/k" {
		t.Fatalf("warnings = %+v", got)
	}
}

func TestEnforce_SameKeyInSiblingObjects(t *testing.T) {
	src := engine.WrapWithEnforcement(engine.NewBytes([]byte(`[{"k":1},{"k":2}]`)), engine.EnforceOptions{OnDuplicate: engine.DupError})
	if _, err := engine.DecodeAny(src); err != nil {
		t.Fatalf("keys are scoped per object: %v", err)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	src := engine.WrapWithEnforcement(engine.NewBytes([]byte(`{"a":{"b":{"c":1}}}`)), engine.EnforceOptions{MaxDepth: 2})
	_, err := engine.DecodeAny(src)
	var ie engine.IssueError
	if !errors.As(err, &ie) || !strings.Contains(ie.Message, "max depth") {
		t.Fatalf("got %v", err)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	doc := `{"notes":"` + strings.Repeat("x", 512) + `"}`
	src := engine.WrapWithEnforcement(engine.NewReader(strings.NewReader(doc)), engine.EnforceOptions{MaxBytes: 32})
	_, err := engine.DecodeAny(src)
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("got %v", err)
	}
}

func TestEnforceOptions_Disabled(t *testing.T) {
	if !(engine.EnforceOptions{}).Disabled() {
		t.Fatal("zero options disable enforcement")
	}
	if (engine.EnforceOptions{MaxDepth: 1}).Disabled() {
		t.Fatal("a depth limit enables enforcement")
	}
}
