package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/karstenskyt/osti/dsl"
	js "github.com/karstenskyt/osti/jsonschema"
	"github.com/karstenskyt/osti/schema"
)

type cone struct {
	Color string   `json:"color"`
	Size  *float64 `json:"size"`
}

type pitch struct {
	Name   string   `json:"name"`
	Cones  []cone   `json:"cones"`
	Lines  int      `json:"lines"`
	Marker *string  `osti:"name=marker" json:"ignored"`
	Tags   []string `json:"tags"`
}

var coneSchema = dsl.ObjectOf[cone]().
	Named("Cone", "A cone.").
	Field("color", dsl.StringOf()).Required().
	Field("size", dsl.FloatOf().Nullable()).
	MustBind()

func pitchSchema() schema.Schema[pitch] {
	return dsl.ObjectOf[pitch]().
		Field("name", dsl.StringOf()).Required().
		Field("cones", dsl.ArrayOf(coneSchema)).Default([]any{}).
		Field("lines", dsl.IntOf()).Default(4).
		Field("marker", dsl.StringOf().Nullable()).
		Field("tags", dsl.ArrayOf(dsl.String())).Default([]any{}).
		MustBind()
}

func TestObject_DefaultsAndPointers(t *testing.T) {
	p, err := pitchSchema().Parse(context.Background(), map[string]any{"name": "main", "marker": "m"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Lines != 4 || p.Cones == nil || p.Tags == nil {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.Marker == nil || *p.Marker != "m" {
		t.Fatalf("osti tag must win over json tag: %+v", p.Marker)
	}
}

func TestObject_DefaultsDoNotAlias(t *testing.T) {
	s := pitchSchema()
	a, _ := s.Parse(context.Background(), map[string]any{"name": "a"})
	a.Tags = append(a.Tags, "x")
	b, _ := s.Parse(context.Background(), map[string]any{"name": "b"})
	if len(b.Tags) != 0 {
		t.Fatalf("default list shared between parses: %v", b.Tags)
	}
}

func TestObject_IssuesInDeclarationOrder(t *testing.T) {
	_, err := pitchSchema().Parse(context.Background(), map[string]any{
		"cones": []any{map[string]any{"size": "big"}},
		"lines": "x",
	})
	iss, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	got := make([]string, 0, len(iss))
	for _, it := range iss {
		got = append(got, it.Code+" "+it.Path)
	}
	want := []string{
		"required /name",
		"required /cones/0/color",
		"type_mismatch /cones/0/size",
		"type_mismatch /lines",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
}

func TestObject_FailFast(t *testing.T) {
	ctx := schema.WithParseOpt(context.Background(), schema.ParseOpt{FailFast: true})
	_, err := pitchSchema().Parse(ctx, map[string]any{"lines": "x"})
	iss, _ := schema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/name" {
		t.Fatalf("expected only /name, got %v", iss)
	}
}

func TestObject_UnknownPolicy(t *testing.T) {
	s := dsl.ObjectOf[cone]().
		Field("color", dsl.StringOf()).
		MustBind()
	in := map[string]any{"color": "red", "b": 1, "a": 2}

	if _, err := s.Parse(context.Background(), in); err != nil {
		t.Fatalf("unknown keys are dropped by default: %v", err)
	}

	ctx := schema.WithParseOpt(context.Background(), schema.ParseOpt{UnknownKeys: schema.UnknownStrict})
	_, err := s.Parse(ctx, in)
	iss, _ := schema.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/a" || iss[1].Path != "/b" {
		t.Fatalf("expected sorted unknown_key issues, got %v", iss)
	}

	sch, err := s.JSONSchema()
	if err != nil {
		t.Fatal(err)
	}
	if sch.AdditionalProperties != nil {
		t.Fatalf("additionalProperties stays open, got %v", sch.AdditionalProperties)
	}
}

func TestObject_NotAnObject(t *testing.T) {
	_, err := coneSchema.Parse(context.Background(), "red")
	iss, _ := schema.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != schema.CodeTypeMismatch || iss[0].Path != "/" {
		t.Fatalf("got %v", iss)
	}
}

func TestObject_Refine(t *testing.T) {
	s := dsl.ObjectOf[cone]().
		Field("color", dsl.StringOf()).
		Refine("no-black", func(rc dsl.RuleCtx, c cone) []schema.Issue {
			if c.Color == "black" {
				return []schema.Issue{rc.Ref.Field("color").Issue(schema.CodeInconsistent, "other", "visibility")}
			}
			return nil
		}).
		MustBind()
	_, err := s.Parse(context.Background(), map[string]any{"color": "black"})
	iss, _ := schema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/color" || iss[0].Rule != "no-black" || iss[0].Params["rule"] != "no-black" {
		t.Fatalf("got %v", iss)
	}
}

func TestObject_Encode(t *testing.T) {
	size := 1.5
	out, err := schema.Marshal(context.Background(), pitchSchema(), pitch{
		Name:  "main",
		Cones: []cone{{Color: "red", Size: &size}, {Color: "blue"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"name":"main","cones":[{"color":"red","size":1.5},{"color":"blue","size":null}],"lines":0,"marker":null,"tags":[]}`
	if string(out) != want {
		t.Fatalf("got  %s\nwant %s", out, want)
	}
}

func TestObject_EncodeRejectsNilRequiredPointer(t *testing.T) {
	type wrap struct {
		C *cone `json:"c"`
	}
	s := dsl.ObjectOf[wrap]().Field("c", dsl.SchemaOf[*cone](dsl.ObjectOf[*cone]().Field("color", dsl.StringOf()).MustBind())).MustBind()
	_, err := s.Encode(context.Background(), wrap{})
	var se *schema.SerializationError
	if !errors.As(err, &se) || se.Path != "/c" {
		t.Fatalf("expected SerializationError at /c, got %v", err)
	}
}

func TestObject_BindErrors(t *testing.T) {
	if _, err := dsl.ObjectOf[cone]().Field("colour", dsl.StringOf()).Bind(); err == nil {
		t.Fatal("unknown struct field must fail to bind")
	}
	if _, err := dsl.ObjectOf[cone]().Field("color", dsl.StringOf()).Field("color", dsl.StringOf()).Bind(); err == nil {
		t.Fatal("duplicate field must fail to bind")
	}
	if _, err := dsl.ObjectOf[int]().Bind(); err == nil {
		t.Fatal("non-struct type must fail to bind")
	}
}

func TestObject_JSONSchema(t *testing.T) {
	sch, err := pitchSchema().JSONSchema()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"name", "cones", "lines", "marker", "tags"}, sch.PropertyOrder); diff != "" {
		t.Fatalf("property order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name"}, sch.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
	cones := sch.Properties["cones"]
	if cones.Items == nil || cones.Items.Ref != js.DefRef("Cone") {
		t.Fatalf("named items must be referenced: %+v", cones.Items)
	}
	if !cones.HasDefault {
		t.Fatalf("static default must be exported")
	}
	marker := sch.Properties["marker"]
	if len(marker.AnyOf) != 2 || marker.AnyOf[1].Type != "null" || !marker.HasDefault || marker.Default != nil {
		t.Fatalf("nullable field = %+v", marker)
	}
}
