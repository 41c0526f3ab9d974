package osti_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/karstenskyt/osti"
	"github.com/karstenskyt/osti/schema"
)

func strPtr(s string) *string { return &s }

func TestExtension_ValueAlternatives(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		ext  osti.Extension
		want string
	}{
		{
			name: "string",
			ext:  osti.Extension{URL: "https://example.org/ext/a", Value: osti.StringValue("high")},
			want: `{"url":"https://example.org/ext/a","name":null,"value_string":"high","value_integer":null,"value_float":null,"value_boolean":null,"value_object":null}`,
		},
		{
			name: "integer",
			ext:  osti.Extension{URL: "u", Name: strPtr("Touches"), Value: osti.IntegerValue(2)},
			want: `{"url":"u","name":"Touches","value_string":null,"value_integer":2,"value_float":null,"value_boolean":null,"value_object":null}`,
		},
		{
			name: "float",
			ext:  osti.Extension{URL: "u", Value: osti.FloatValue(4.5)},
			want: `{"url":"u","name":null,"value_string":null,"value_integer":null,"value_float":4.5,"value_boolean":null,"value_object":null}`,
		},
		{
			name: "boolean",
			ext:  osti.Extension{URL: "u", Value: osti.BooleanValue(false)},
			want: `{"url":"u","name":null,"value_string":null,"value_integer":null,"value_float":null,"value_boolean":false,"value_object":null}`,
		},
		{
			name: "object",
			ext:  osti.Extension{URL: "u", Value: osti.ObjectValue(map[string]any{"k": "v"})},
			want: `{"url":"u","name":null,"value_string":null,"value_integer":null,"value_float":null,"value_boolean":null,"value_object":{"k":"v"}}`,
		},
		{
			name: "none",
			ext:  osti.Extension{URL: "u"},
			want: `{"url":"u","name":null,"value_string":null,"value_integer":null,"value_float":null,"value_boolean":null,"value_object":null}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := osti.Marshal(ctx, tt.ext)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("got  %s\nwant %s", out, tt.want)
			}
			var back osti.Extension
			if err := osti.Unmarshal(ctx, out, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.ext, back); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtension_ObjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	ext := osti.Extension{
		URL: "https://example.org/ext/club",
		Value: osti.ObjectValue(map[string]any{
			"name":    "FC Example",
			"founded": 1905,
			"rating":  4.5,
			"tags":    []any{"academy", "u14"},
			"nested":  map[string]any{"ok": true, "none": nil},
		}),
	}
	out, err := osti.Marshal(ctx, ext)
	if err != nil {
		t.Fatal(err)
	}
	var back osti.Extension
	if err := osti.Unmarshal(ctx, out, &back); err != nil {
		t.Fatal(err)
	}
	if !ext.Value.Equal(back.Value) {
		t.Fatalf("object value changed across round trip: %v vs %v", ext.Value, back.Value)
	}
	obj, ok := back.Value.AsObject()
	if !ok {
		t.Fatalf("kind = %s", back.Value.Kind())
	}
	if obj["founded"] != int64(1905) {
		t.Fatalf("integral numbers normalize to int64, got %T", obj["founded"])
	}
}

func TestExtension_Accessors(t *testing.T) {
	v := osti.IntegerValue(7)
	if i, ok := v.AsInteger(); !ok || i != 7 {
		t.Fatalf("AsInteger = %d, %v", i, ok)
	}
	if _, ok := v.AsString(); ok {
		t.Fatalf("integer value must not report a string")
	}
	if v.Kind() != osti.ValueInteger || v.Kind().String() != "integer" {
		t.Fatalf("kind = %s", v.Kind())
	}
	if osti.StringValue("7").Equal(v) {
		t.Fatalf("different alternatives must not be equal")
	}
	if o, ok := osti.ObjectValue(nil).AsObject(); !ok || o == nil || len(o) != 0 {
		t.Fatalf("nil object must become an empty object")
	}
}

func TestExtension_ExclusiveValue(t *testing.T) {
	_, err := osti.ParseExtension(context.Background(), map[string]any{
		"url":           "u",
		"value_string":  "a",
		"value_integer": 1,
	})
	iss := mustIssues(t, err)
	if !iss.Has("/", schema.CodeExclusiveValue) {
		t.Fatalf("expected exclusive_value, got %v", iss)
	}
	if iss[0].Rule != "exclusive-value" {
		t.Fatalf("rule = %q", iss[0].Rule)
	}
	if diff := cmp.Diff([]string{"value_string", "value_integer"}, iss[0].Params["fields"]); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestExtension_ExclusiveValueInPlan(t *testing.T) {
	doc := []byte(`{
		"metadata": {},
		"source": {"filename": "f.pdf"},
		"extensions": [{"url": "ok", "value_float": 1.5}, {"url": "bad", "value_boolean": true, "value_float": 2}]
	}`)
	var plan osti.SessionPlan
	iss := mustIssues(t, osti.Unmarshal(context.Background(), doc, &plan))
	if !iss.Has("/extensions/1", schema.CodeExclusiveValue) {
		t.Fatalf("expected exclusive_value at /extensions/1, got %v", iss)
	}
}

func TestExtension_URLRequired(t *testing.T) {
	_, err := osti.ParseExtension(context.Background(), map[string]any{"value_string": "x"})
	if iss := mustIssues(t, err); !iss.Has("/url", schema.CodeRequired) {
		t.Fatalf("expected required at /url, got %v", iss)
	}
}

func TestExtension_NullValuesAreAbsent(t *testing.T) {
	e, err := osti.ParseExtension(context.Background(), map[string]any{
		"url":          "u",
		"value_string": nil,
		"value_float":  3.25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := e.Value.AsFloat(); !ok || f != 3.25 {
		t.Fatalf("value = %v", e.Value)
	}
}

func TestExtension_IntegerInDrillRoundTrip(t *testing.T) {
	ctx := context.Background()
	plan := osti.SessionPlan{
		ID:       uuid.New(),
		Metadata: osti.SessionMetadata{Title: strPtr("Pressing")},
		Source:   osti.Source{Filename: "pressing.pdf"},
		Drills: []osti.DrillBlock{{
			ID:   uuid.New(),
			Name: "Rondo 5v2",
			Extensions: []osti.Extension{{
				URL:   "https://example.org/ext/intensity",
				Name:  strPtr("Intensity"),
				Value: osti.IntegerValue(8),
			}},
		}},
	}
	out, err := osti.Marshal(ctx, plan)
	if err != nil {
		t.Fatal(err)
	}

	var back osti.SessionPlan
	if err := osti.Unmarshal(ctx, out, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Drills) != 1 || len(back.Drills[0].Extensions) != 1 {
		t.Fatalf("drills = %+v", back.Drills)
	}
	v := back.Drills[0].Extensions[0].Value
	if v.Kind() != osti.ValueInteger {
		t.Fatalf("kind = %s", v.Kind())
	}
	if i, ok := v.AsInteger(); !ok || i != 8 {
		t.Fatalf("value_integer = %d, %v", i, ok)
	}

	var wire struct {
		Drills []struct {
			Extensions []map[string]any `json:"extensions"`
		} `json:"drills"`
	}
	if err := json.Unmarshal(out, &wire); err != nil {
		t.Fatal(err)
	}
	ext := wire.Drills[0].Extensions[0]
	if ext["value_integer"] != float64(8) {
		t.Fatalf("value_integer on the wire = %v", ext["value_integer"])
	}
	for _, k := range []string{"value_string", "value_float", "value_boolean", "value_object"} {
		v, present := ext[k]
		if !present || v != nil {
			t.Fatalf("%s = %v (present %v), want null", k, v, present)
		}
	}
}
