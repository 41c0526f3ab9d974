package jsonschema_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	js "github.com/karstenskyt/osti/jsonschema"
)

func color() *js.Schema {
	return &js.Schema{Name: "Color", Type: "string", Enum: []any{"red", "blue"}}
}

func cone() *js.Schema {
	return &js.Schema{
		Name:          "Cone",
		Type:          "object",
		Properties:    map[string]*js.Schema{"color": js.RefTo(color()), "label": js.Optional(&js.Schema{Type: "string"})},
		PropertyOrder: []string{"color", "label"},
		Required:      []string{"color"},
	}
}

func root() *js.Schema {
	return &js.Schema{
		Name: "Pitch",
		Type: "object",
		Properties: map[string]*js.Schema{
			"cones":   {Type: "array", Items: js.RefTo(cone())},
			"primary": js.Optional(cone()),
			"accent":  color(),
		},
		PropertyOrder: []string{"cones", "primary", "accent"},
	}
}

func TestExport_HoistsNamedNodes(t *testing.T) {
	doc, err := js.Export(root(), js.Meta{ID: "https://example.org/pitch.json", Title: "Pitch"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Color", "Cone"}, doc.DefNames()); diff != "" {
		t.Fatalf("defs (-want +got):\n%s", diff)
	}
	if got := doc.Root.Properties["accent"].Ref; got != "#/$defs/Color" {
		t.Fatalf("named property must become a $ref, got %q", got)
	}
	if got := doc.Root.Properties["primary"].AnyOf[0].Ref; got != "#/$defs/Cone" {
		t.Fatalf("optional named property must reference the definition, got %q", got)
	}
	if doc.Defs["Cone"].Title != "Cone" {
		t.Fatalf("definitions are titled by name")
	}
}

func TestExport_Marshal(t *testing.T) {
	doc, err := js.Export(root(), js.Meta{ID: "https://example.org/pitch.json", Title: "Pitch", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	const head = `{"$schema":"https://json-schema.org/draft/2020-12/schema","$id":"https://example.org/pitch.json","title":"Pitch","description":"d","type":"object","properties":{"cones":`
	if !strings.HasPrefix(s, head) {
		t.Fatalf("unexpected head:\n%s", s)
	}
	if strings.Count(s, `"title":"Pitch"`) != 1 {
		t.Fatalf("root title must appear once: %s", s)
	}
	if !strings.Contains(s, `"label":{"anyOf":[{"type":"string"},{"type":"null"}],"default":null}`) &&
		!strings.Contains(s, `"label":{"default":null,"anyOf":[{"type":"string"},{"type":"null"}]}`) {
		t.Fatalf("optional property not rendered as anyOf with null default: %s", s)
	}
	if strings.Index(s, `"$defs":{"Color"`) < 0 || strings.Index(s, `"Color"`) > strings.Index(s, `"Cone":{`) {
		t.Fatalf("definitions must be sorted: %s", s)
	}
}

func TestExport_Deterministic(t *testing.T) {
	var prev []byte
	for i := 0; i < 5; i++ {
		doc, err := js.Export(root(), js.Meta{Title: "Pitch"})
		if err != nil {
			t.Fatal(err)
		}
		b, err := doc.MarshalIndent()
		if err != nil {
			t.Fatal(err)
		}
		if prev != nil && !bytes.Equal(prev, b) {
			t.Fatalf("export %d differs", i)
		}
		prev = b
	}
}

func TestExport_ConflictingDefinitions(t *testing.T) {
	other := &js.Schema{Name: "Color", Type: "string", Enum: []any{"green"}}
	r := &js.Schema{
		Type:          "object",
		Properties:    map[string]*js.Schema{"a": color(), "b": other},
		PropertyOrder: []string{"a", "b"},
	}
	_, err := js.Export(r, js.Meta{})
	var xe *js.SchemaExportError
	if !errors.As(err, &xe) || xe.Type != "Color" || xe.Reason != "conflicting definitions" {
		t.Fatalf("expected conflicting definitions error, got %v", err)
	}
}

func TestExport_UnresolvedReference(t *testing.T) {
	r := &js.Schema{
		Type:       "object",
		Properties: map[string]*js.Schema{"x": {Ref: js.DefRef("Ghost")}},
	}
	_, err := js.Export(r, js.Meta{})
	var xe *js.SchemaExportError
	if !errors.As(err, &xe) || !strings.Contains(xe.Reason, "unresolved reference") {
		t.Fatalf("expected unresolved reference error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Ghost") {
		t.Fatalf("error must name the reference: %v", err)
	}
}

func TestExport_NilRoot(t *testing.T) {
	var xe *js.SchemaExportError
	if _, err := js.Export(nil, js.Meta{}); !errors.As(err, &xe) {
		t.Fatalf("got %v", err)
	}
}

func TestSchema_MarshalKeyOrder(t *testing.T) {
	s := &js.Schema{
		Type:        "number",
		Description: "x",
		Minimum:     js.Float64(0),
		Maximum:     js.Float64(100),
		Default:     50,
		HasDefault:  true,
	}
	b, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"description":"x","type":"number","default":50,"minimum":0,"maximum":100}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestDefRef_Escapes(t *testing.T) {
	if got := js.DefRef("a/b~c"); got != "#/$defs/a~1b~0c" {
		t.Fatalf("got %s", got)
	}
}
