package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/glass"
)

// skipNagaLimitation skips the test when naga reports a feature it does not
// implement yet rather than a problem with the kernel.
func skipNagaLimitation(t *testing.T, err error) {
	t.Helper()
	errStr := err.Error()
	if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
	if strings.Contains(errStr, "lowering error") || strings.Contains(errStr, "validation failed") {
		t.Skipf("Skipping: naga lowering limitation: %v", err)
	}
}

func TestCheckSchema(t *testing.T) {
	err := CheckSchema()
	var se *SchemaError
	if errors.As(err, &se) {
		t.Fatalf("kernel drifted from the Go layout: %v", err)
	}
	if err != nil {
		skipNagaLimitation(t, err)
		t.Fatalf("CheckSchema: %v", err)
	}
}

func TestReflectKernel(t *testing.T) {
	r, err := Reflect()
	if err != nil {
		skipNagaLimitation(t, err)
		t.Fatalf("Reflect: %v", err)
	}
	if len(r.Members) != glass.UniformCount {
		t.Errorf("reflected %d members, want %d", len(r.Members), glass.UniformCount)
	}
	if r.Span != UniformSize {
		t.Errorf("Span = %d, want %d", r.Span, UniformSize)
	}
	var hasVS, hasFS bool
	for _, ep := range r.EntryPoints {
		hasVS = hasVS || ep == VertexEntry
		hasFS = hasFS || ep == FragmentEntry
	}
	if !hasVS || !hasFS {
		t.Errorf("entry points = %v, want %s and %s", r.EntryPoints, VertexEntry, FragmentEntry)
	}
}

func TestReflectSourceDetectsDrift(t *testing.T) {
	// canvas_size and chromatic_aberration swapped.
	drifted := `
struct LiquidGlassUniforms {
    chromatic_aberration: f32,
    canvas_size: vec2<f32>,
}

@group(0) @binding(0) var<uniform> u: LiquidGlassUniforms;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(u.canvas_size, u.chromatic_aberration, 1.0);
}
`
	r, err := ReflectSource(drifted)
	if err != nil {
		skipNagaLimitation(t, err)
		t.Fatalf("ReflectSource: %v", err)
	}
	if len(r.Members) != 2 || r.Members[1].Offset != 8 {
		t.Fatalf("members = %+v", r.Members)
	}

	err = r.Compare(Layout(), UniformSize)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Compare error = %v, want *SchemaError", err)
	}
	if !strings.Contains(se.Error(), "member count 2") || !strings.Contains(se.Error(), `"chromatic_aberration"`) {
		t.Errorf("unexpected problems: %v", se.Problems)
	}
}

func TestReflectSourceMissingStruct(t *testing.T) {
	src := `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
	_, err := ReflectSource(src)
	if err == nil {
		t.Fatal("expected an error for a kernel without the uniform struct")
	}
	skipNagaLimitation(t, err)
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want struct not found", err)
	}
}

func TestCompareReportsEveryProblem(t *testing.T) {
	want := Layout()
	got := Layout()
	got[3].Offset += 4
	got[5].Kind = glass.KindFloat2
	got[7].Name = "refraction_index"
	r := &Reflection{Members: got, Span: 176, Binding: 3}

	err := r.Compare(want, UniformSize)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Compare error = %v, want *SchemaError", err)
	}
	if len(se.Problems) != 5 {
		t.Errorf("problems = %q, want 5 entries", se.Problems)
	}

	ok := &Reflection{Members: Layout(), Span: UniformSize}
	if err := ok.Compare(want, UniformSize); err != nil {
		t.Errorf("matching reflection reported %v", err)
	}
}

func TestCompileSPIRV(t *testing.T) {
	code, err := CompileSPIRV()
	if err != nil {
		skipNagaLimitation(t, err)
		t.Fatalf("CompileSPIRV: %v", err)
	}
	if len(code) < 5 {
		t.Fatal("SPIR-V too short")
	}
	if code[0] != SPIRVMagic {
		t.Errorf("magic = %#08x, want %#08x", code[0], SPIRVMagic)
	}
}
