package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/glass"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Reflection is what naga reports about the kernel's uniform binding.
type Reflection struct {
	// Members of the uniform struct, in declaration order.
	Members []Member
	// Span is the struct size in bytes.
	Span uint32
	// Group and Binding of the uniform global.
	Group, Binding uint32
	// EntryPoints lists the kernel's entry point names.
	EntryPoints []string
}

// Reflect parses and lowers the embedded kernel with naga and extracts the
// uniform struct declaration.
func Reflect() (*Reflection, error) {
	return ReflectSource(source)
}

// ReflectSource is Reflect for arbitrary WGSL that declares a
// LiquidGlassUniforms struct bound as a uniform.
func ReflectSource(src string) (*Reflection, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shader: parse: %w", err)
	}
	mod, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shader: lowering error: %w", err)
	}

	handle, st, ok := findStruct(mod, UniformStruct)
	if !ok {
		return nil, fmt.Errorf("shader: struct %s not found", UniformStruct)
	}

	r := &Reflection{Span: st.Span}
	for _, m := range st.Members {
		kind, size, err := memberKind(mod, m.Type)
		if err != nil {
			return nil, fmt.Errorf("shader: member %s: %w", m.Name, err)
		}
		r.Members = append(r.Members, Member{Name: m.Name, Kind: kind, Offset: m.Offset, Size: size})
	}

	bound := false
	for _, g := range mod.GlobalVariables {
		if g.Type != handle || g.Space != ir.SpaceUniform || g.Binding == nil {
			continue
		}
		r.Group, r.Binding = g.Binding.Group, g.Binding.Binding
		bound = true
		break
	}
	if !bound {
		return nil, fmt.Errorf("shader: no uniform global of type %s", UniformStruct)
	}

	for _, ep := range mod.EntryPoints {
		r.EntryPoints = append(r.EntryPoints, ep.Name)
	}
	return r, nil
}

func findStruct(mod *ir.Module, name string) (ir.TypeHandle, ir.StructType, bool) {
	for i, t := range mod.Types {
		if t.Name != name {
			continue
		}
		if st, ok := t.Inner.(ir.StructType); ok {
			return ir.TypeHandle(i), st, true //nolint:gosec // type arena index fits
		}
	}
	return 0, ir.StructType{}, false
}

func memberKind(mod *ir.Module, h ir.TypeHandle) (glass.Kind, uint32, error) {
	if int(h) >= len(mod.Types) {
		return 0, 0, fmt.Errorf("type handle %d out of range", h)
	}
	switch inner := mod.Types[h].Inner.(type) {
	case ir.ScalarType:
		if inner.Kind == ir.ScalarFloat && inner.Width == 4 {
			return glass.KindFloat, 4, nil
		}
	case ir.VectorType:
		if inner.Scalar.Kind != ir.ScalarFloat || inner.Scalar.Width != 4 {
			break
		}
		switch inner.Size {
		case ir.Vec2:
			return glass.KindFloat2, 8, nil
		case ir.Vec4:
			return glass.KindColor, 16, nil
		}
	}
	return 0, 0, fmt.Errorf("unsupported member type %T", mod.Types[h].Inner)
}

// SchemaError lists every difference between the kernel's uniform struct
// and the Go-side layout.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "shader: uniform schema mismatch: " + strings.Join(e.Problems, "; ")
}

// CheckSchema reflects the embedded kernel and compares its uniform struct
// with Layout. It returns a *SchemaError describing every mismatch, or the
// reflection error if naga could not process the kernel.
func CheckSchema() error {
	r, err := Reflect()
	if err != nil {
		return err
	}
	return r.Compare(Layout(), UniformSize)
}

// Compare checks the reflected struct against want member by member.
func (r *Reflection) Compare(want []Member, size uint32) error {
	var problems []string
	if len(r.Members) != len(want) {
		problems = append(problems, fmt.Sprintf("member count %d, want %d", len(r.Members), len(want)))
	}
	n := min(len(r.Members), len(want))
	for i := 0; i < n; i++ {
		got, w := r.Members[i], want[i]
		if got.Name != w.Name {
			problems = append(problems, fmt.Sprintf("member %d named %q, want %q", i, got.Name, w.Name))
		}
		if got.Kind != w.Kind {
			problems = append(problems, fmt.Sprintf("%s is %v, want %v", w.Name, got.Kind, w.Kind))
		}
		if got.Offset != w.Offset {
			problems = append(problems, fmt.Sprintf("%s at offset %d, want %d", w.Name, got.Offset, w.Offset))
		}
	}
	if r.Span != 0 && r.Span != size {
		problems = append(problems, fmt.Sprintf("struct size %d, want %d", r.Span, size))
	}
	if r.Group != 0 || r.Binding != UniformBinding {
		problems = append(problems, fmt.Sprintf("bound at @group(%d) @binding(%d), want @group(0) @binding(%d)", r.Group, r.Binding, UniformBinding))
	}
	if len(problems) > 0 {
		return &SchemaError{Problems: problems}
	}
	return nil
}
