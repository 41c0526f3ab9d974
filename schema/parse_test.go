package schema_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

// treeSchema accepts any tree and returns it unchanged.
type treeSchema struct{}

func (treeSchema) Parse(ctx context.Context, v any) (any, error)  { return v, nil }
func (treeSchema) Encode(ctx context.Context, v any) (any, error) { return v, nil }
func (treeSchema) JSONSchema() (*js.Schema, error)                { return &js.Schema{}, nil }

func TestParseFrom_DuplicateKey_Error(t *testing.T) {
	opt := schema.ParseOpt{Strictness: schema.Strictness{OnDuplicateKey: schema.Error}}
	_, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(`{"a":1,"a":2}`)), opt)
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues error, got: %v", err)
	}
	if iss[0].Code != schema.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got: %v", iss)
	}
}

func TestParseFrom_DuplicateKey_NestedPath(t *testing.T) {
	opt := schema.ParseOpt{Strictness: schema.Strictness{OnDuplicateKey: schema.Error}}
	_, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(`[{"a":1,"a":2}]`)), opt)
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != "/0/a" {
		t.Fatalf("expected path=/0/a, got: %s", iss[0].Path)
	}
}

func TestParseFrom_DuplicateKey_WarnAndIgnore(t *testing.T) {
	var warned []schema.Issue
	opt := schema.ParseOpt{
		Strictness: schema.Strictness{OnDuplicateKey: schema.Warn},
		WarnSink:   func(it schema.Issue) { warned = append(warned, it) },
	}
	v, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(`{"a":1,"a":2}`)), opt)
	if err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Path != "/a" {
		t.Fatalf("expected one warning at /a, got %v", warned)
	}
	if m := v.(map[string]any); m["a"] == nil {
		t.Fatalf("value lost: %v", v)
	}

	if _, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(`{"a":1,"a":2}`))); err != nil {
		t.Fatalf("duplicates are ignored by default: %v", err)
	}
}

func TestParseFrom_MaxDepth_Exceeded(t *testing.T) {
	// depth = 3 for { a: { b: { c: 1 } } }
	opt := schema.ParseOpt{MaxDepth: 2}
	_, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), opt)
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Path != "/a/b" {
		t.Fatalf("expected path=/a/b for max depth, got: %v", err)
	}
}

func TestParseFrom_MaxBytes_Exceeded(t *testing.T) {
	data := []byte(`{"notes":"` + string(bytes.Repeat([]byte("x"), 1024)) + `"}`)
	opt := schema.ParseOpt{MaxBytes: 16}
	_, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONReader(bytes.NewReader(data)), opt)
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != schema.CodeTruncated {
		t.Fatalf("expected truncated, got: %v", err)
	}
}

func TestParseFrom_Malformed(t *testing.T) {
	for _, in := range []string{`{"a":`, `{"a":1}}`, `[1,2`, ``} {
		_, err := schema.ParseFrom(context.Background(), treeSchema{}, schema.JSONBytes([]byte(in)))
		iss, ok := schema.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != schema.CodeParseError {
			t.Fatalf("%q: expected parse_error, got %v", in, err)
		}
	}
}

func TestParseFrom_OptionsReachSchema(t *testing.T) {
	var seen schema.ParseOpt
	probe := probeSchema{fn: func(ctx context.Context) { seen = schema.ParseOptFrom(ctx) }}
	_, _ = schema.ParseFrom(context.Background(), probe, schema.JSONBytes([]byte(`{}`)), schema.Strict())
	if seen.UnknownKeys != schema.UnknownStrict || !seen.Strictness.CoordinateRange {
		t.Fatalf("options not propagated: %+v", seen)
	}
}

type probeSchema struct{ fn func(context.Context) }

func (p probeSchema) Parse(ctx context.Context, v any) (any, error)  { p.fn(ctx); return v, nil }
func (probeSchema) Encode(ctx context.Context, v any) (any, error) { return v, nil }
func (probeSchema) JSONSchema() (*js.Schema, error)                { return &js.Schema{}, nil }

func TestIssues_ErrorsAsAndByPath(t *testing.T) {
	var err error = schema.Issues{
		{Path: "/drills/0/name", Code: schema.CodeRequired},
		{Path: "/drills/0/name", Code: schema.CodeTypeMismatch},
		{Path: "/source", Code: schema.CodeRequired},
	}
	var iss schema.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("errors.As failed")
	}
	by := iss.ByPath()
	if len(by["/drills/0/name"]) != 2 || len(by["/source"]) != 1 {
		t.Fatalf("unexpected grouping: %v", by)
	}
	if got := iss.Paths(); len(got) != 2 || got[0] != "/drills/0/name" {
		t.Fatalf("unexpected paths: %v", got)
	}
	if iss[0].Field() != "name" {
		t.Fatalf("Field() = %q", iss[0].Field())
	}
	if !iss.Has("/source", schema.CodeRequired) || iss.Has("/source", schema.CodeTypeMismatch) {
		t.Fatalf("Has mismatch")
	}
}

func TestRebase(t *testing.T) {
	got := schema.Rebase("/drills/2", schema.Issues{{Path: "/"}, {Path: "/name"}, {Path: "x"}})
	want := []string{"/drills/2", "/drills/2/name", "/drills/2/x"}
	for i, w := range want {
		if got[i].Path != w {
			t.Fatalf("[%d] got %s want %s", i, got[i].Path, w)
		}
	}
}

func TestSerializationError_RebaseAndUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := schema.RebaseSerialization("/drills/0", &schema.SerializationError{Path: "/arrow_type", Err: base})
	var se *schema.SerializationError
	if !errors.As(err, &se) || se.Path != "/drills/0/arrow_type" {
		t.Fatalf("unexpected: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause lost")
	}
}

func TestPathRef_Escaping(t *testing.T) {
	p := schema.Root().Field("a/b").Index(3).Field("c~d").Pointer()
	if p != "/a~1b/3/c~0d" {
		t.Fatalf("got %s", p)
	}
	if schema.Root().Pointer() != "/" {
		t.Fatalf("root pointer")
	}
	it := schema.At("/drills/0").Field("name").Issue(schema.CodeRequired)
	if it.Path != "/drills/0/name" || it.Message == "" {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestObject_KeepsInsertionOrder(t *testing.T) {
	o := schema.NewObject(3)
	o.Set("z", 1)
	o.Set("a", []any{schema.NewObject(0)})
	o.Set("m", nil)
	o.Set("z", 2)
	b, err := o.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"z":2,"a":[{}],"m":null}` {
		t.Fatalf("got %s", b)
	}
}
