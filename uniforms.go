package glass

import "fmt"

// Kind is the arity class of one kernel argument.
type Kind uint8

const (
	// KindFloat is a single f32.
	KindFloat Kind = iota + 1
	// KindFloat2 is a vec2<f32>.
	KindFloat2
	// KindColor is an RGBA vec4<f32>.
	KindColor
)

// String returns the WGSL spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindFloat2:
		return "vec2<f32>"
	case KindColor:
		return "vec4<f32>"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Components returns the number of f32 components of the kind.
func (k Kind) Components() int {
	switch k {
	case KindFloat:
		return 1
	case KindFloat2:
		return 2
	case KindColor:
		return 4
	default:
		return 0
	}
}

// Scalar is one positional kernel argument. Only the first
// Kind.Components() entries of V are meaningful; the rest are zero.
type Scalar struct {
	Kind Kind
	V    [4]float32
}

// Float returns a KindFloat scalar.
func Float(v float32) Scalar {
	return Scalar{Kind: KindFloat, V: [4]float32{v}}
}

// Float2 returns a KindFloat2 scalar.
func Float2(x, y float32) Scalar {
	return Scalar{Kind: KindFloat2, V: [4]float32{x, y}}
}

// Color returns a KindColor scalar.
func Color(c [4]float32) Scalar {
	return Scalar{Kind: KindColor, V: c}
}

// Field names one position of the uniform schema.
type Field struct {
	Name string
	Kind Kind
}

// ShapeUniforms is the record of one shape slot.
type ShapeUniforms struct {
	// Type is the shape tag, 0 when the slot is disabled.
	Type         float32
	Center       [2]float32
	Size         [2]float32
	CornerRadius float32
}

// Switches holds the per-feature enable switches, 1 or 0.
type Switches struct {
	SmoothUnion         float32
	Refraction          float32
	ChromaticAberration float32
	Lighting            float32
	GlassColor          float32
	Blur                float32
}

// Uniforms is the argument record of the glass kernel. Field order is the
// kernel's declared parameter order; Values serializes it positionally.
type Uniforms struct {
	CanvasSize          [2]float32
	ChromaticAberration float32
	GlassColor          [4]float32
	LightAngle          float32
	LightIntensity      float32
	AmbientStrength     float32
	Thickness           float32
	RefractiveIndex     float32
	Shapes              [ShapeCount]ShapeUniforms
	Blend               float32
	BlurRadius          float32
	Switches            Switches
}

// UniformCount is the number of positional kernel arguments.
const UniformCount = 28

var schema = func() []Field {
	f := []Field{
		{"canvas_size", KindFloat2},
		{"chromatic_aberration", KindFloat},
		{"glass_color", KindColor},
		{"light_angle", KindFloat},
		{"light_intensity", KindFloat},
		{"ambient_strength", KindFloat},
		{"thickness", KindFloat},
		{"refractive_index", KindFloat},
	}
	for i := 0; i < ShapeCount; i++ {
		f = append(f,
			Field{fmt.Sprintf("shape%d_type", i), KindFloat},
			Field{fmt.Sprintf("shape%d_center", i), KindFloat2},
			Field{fmt.Sprintf("shape%d_size", i), KindFloat2},
			Field{fmt.Sprintf("shape%d_corner_radius", i), KindFloat},
		)
	}
	return append(f,
		Field{"blend", KindFloat},
		Field{"blur_radius", KindFloat},
		Field{"smooth_union_enabled", KindFloat},
		Field{"refraction_enabled", KindFloat},
		Field{"chromatic_aberration_enabled", KindFloat},
		Field{"lighting_enabled", KindFloat},
		Field{"glass_color_enabled", KindFloat},
		Field{"blur_enabled", KindFloat},
	)
}()

// Schema returns the kernel's positional parameter list. Names match the
// members of the kernel's uniform struct.
func Schema() []Field {
	out := make([]Field, len(schema))
	copy(out, schema)
	return out
}

// Encode flattens the scene into the kernel's argument record for a canvas
// of the given size.
//
// A disabled shape slot gets type tag 0; its geometry is still emitted so
// the record length never changes. Feature flags become trailing 1/0
// switches. Nothing is clamped. Encode is pure: the same inputs always
// produce the same record.
func Encode(p *Parameters, canvas Size) Uniforms {
	u := Uniforms{
		CanvasSize:          [2]float32{float32(canvas.W), float32(canvas.H)},
		ChromaticAberration: float32(p.ChromaticAberration.Amount),
		GlassColor:          p.GlassColor.Color.Float32(),
		LightAngle:          float32(p.Lighting.Angle),
		LightIntensity:      float32(p.Lighting.Intensity),
		AmbientStrength:     float32(p.Lighting.Ambient),
		Thickness:           float32(p.Refraction.Thickness),
		RefractiveIndex:     float32(p.Refraction.Index),
		Blend:               float32(p.SmoothUnion.Blend),
		BlurRadius:          float32(p.Blur.Radius),
		Switches: Switches{
			SmoothUnion:         flag(p.SmoothUnion.Enabled),
			Refraction:          flag(p.Refraction.Enabled),
			ChromaticAberration: flag(p.ChromaticAberration.Enabled),
			Lighting:            flag(p.Lighting.Enabled),
			GlassColor:          flag(p.GlassColor.Enabled),
			Blur:                flag(p.Blur.Enabled),
		},
	}
	for i := range p.Shapes {
		s := &p.Shapes[i]
		c := s.Center(canvas)
		tag := ShapeNone.Tag()
		if s.Enabled {
			tag = s.Type.Tag()
		}
		u.Shapes[i] = ShapeUniforms{
			Type:         tag,
			Center:       [2]float32{float32(c.X), float32(c.Y)},
			Size:         [2]float32{float32(s.Size.W), float32(s.Size.H)},
			CornerRadius: float32(s.CornerRadius),
		}
	}
	return u
}

func flag(on bool) float32 {
	if on {
		return 1
	}
	return 0
}

// Values serializes the record in kernel parameter order. The result always
// has UniformCount entries whose kinds follow Schema.
func (u *Uniforms) Values() []Scalar {
	v := make([]Scalar, 0, UniformCount)
	v = append(v,
		Float2(u.CanvasSize[0], u.CanvasSize[1]),
		Float(u.ChromaticAberration),
		Color(u.GlassColor),
		Float(u.LightAngle),
		Float(u.LightIntensity),
		Float(u.AmbientStrength),
		Float(u.Thickness),
		Float(u.RefractiveIndex),
	)
	for i := range u.Shapes {
		s := &u.Shapes[i]
		v = append(v,
			Float(s.Type),
			Float2(s.Center[0], s.Center[1]),
			Float2(s.Size[0], s.Size[1]),
			Float(s.CornerRadius),
		)
	}
	return append(v,
		Float(u.Blend),
		Float(u.BlurRadius),
		Float(u.Switches.SmoothUnion),
		Float(u.Switches.Refraction),
		Float(u.Switches.ChromaticAberration),
		Float(u.Switches.Lighting),
		Float(u.Switches.GlassColor),
		Float(u.Switches.Blur),
	)
}

// Floats returns the record's components flattened in parameter order,
// without any padding.
func (u *Uniforms) Floats() []float32 {
	vals := u.Values()
	out := make([]float32, 0, 48)
	for _, s := range vals {
		out = append(out, s.V[:s.Kind.Components()]...)
	}
	return out
}
