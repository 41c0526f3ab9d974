package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/karstenskyt/osti"
	"github.com/karstenskyt/osti/schema"
)

// ---- Helpers ----

// generatePlan returns a session plan with the given number of drills, each
// carrying arrows diagram arrows and a tactical context.
func generatePlan(drills, arrows int) []byte {
	var buf bytes.Buffer
	buf.Grow(drills * (512 + arrows*96))
	buf.WriteString(`{"metadata":{"title":"Generated","duration_minutes":90},`)
	buf.WriteString(`"source":{"filename":"generated.pdf","page_count":12},"drills":[`)
	for i := 0; i < drills; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"name":"Drill %d","sequence":["step one","step two"],`, i)
		buf.WriteString(`"tactical_context":{"game_element":"counter_attack","lanes":["left_wing","central_corridor"],"situation_type":"opposed"},`)
		buf.WriteString(`"diagram":{"pitch_view":{"view_type":"half_pitch"},"arrows":[`)
		for k := 0; k < arrows; k++ {
			if k > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, `{"start_x":%d,"start_y":%d,"end_x":%d,"end_y":%d,"arrow_type":"pass","sequence_number":%d}`,
				k%100, (k*7)%100, (k+13)%100, (k*3)%100, k)
		}
		buf.WriteString(`]}}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

// ---- Micro benchmarks ----

func Benchmark_Unmarshal_SessionPlan_Small(b *testing.B) {
	ctx := context.Background()
	data := generatePlan(1, 4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p osti.SessionPlan
		if err := osti.Unmarshal(ctx, data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_SessionPlan_Small_Reader(b *testing.B) {
	ctx := context.Background()
	data := generatePlan(1, 4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := osti.DecodeSessionPlan(ctx, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Macro benchmarks ----

const (
	manyDrills = 200
	manyArrows = 40
)

func Benchmark_Unmarshal_SessionPlan_Large(b *testing.B) {
	ctx := context.Background()
	data := generatePlan(manyDrills, manyArrows)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p osti.SessionPlan
		if err := osti.Unmarshal(ctx, data, &p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Unmarshal_SessionPlan_Large_Strict(b *testing.B) {
	ctx := context.Background()
	data := generatePlan(manyDrills, manyArrows)
	opt := schema.Strict()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p osti.SessionPlan
		if err := osti.Unmarshal(ctx, data, &p, opt); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Marshal_SessionPlan_Large(b *testing.B) {
	ctx := context.Background()
	var p osti.SessionPlan
	if err := osti.Unmarshal(ctx, generatePlan(manyDrills, manyArrows), &p); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := osti.Marshal(ctx, p); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_SchemaJSON(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := osti.SchemaJSON(); err != nil {
			b.Fatal(err)
		}
	}
}

// The generated plan must stay valid under every check, or the benchmarks
// above measure the error path.
func TestGeneratedPlanIsValid(t *testing.T) {
	var p osti.SessionPlan
	if err := osti.Unmarshal(context.Background(), generatePlan(3, 5), &p, schema.Strict()); err != nil {
		t.Fatal(err)
	}
	if len(p.Drills) != 3 || len(p.Drills[2].Diagram.Arrows) != 5 {
		t.Fatalf("plan = %+v", p)
	}
}
