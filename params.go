package glass

import "math"

// ShapeCount is the fixed number of shape slots in a scene.
const ShapeCount = 3

// GlassColor tints the glass.
type GlassColor struct {
	Enabled bool
	Color   RGBA
}

// Lighting is a directional light over the glass surface.
type Lighting struct {
	Enabled bool

	// Angle is the light direction in radians, in [0, 2π].
	Angle float64

	// Intensity scales the highlight, >= 0.
	Intensity float64

	// Ambient is the ambient term, in [0, 1].
	Ambient float64
}

// Refraction bends the background seen through the glass.
type Refraction struct {
	Enabled   bool
	Thickness float64 // >= 0
	Index     float64 // refractive index, >= 1
}

// ChromaticAberration splits color channels along the refraction offset.
type ChromaticAberration struct {
	Enabled bool
	Amount  float64
}

// Blur blurs the background seen through the glass.
type Blur struct {
	Enabled bool
	Radius  float64
}

// SmoothUnion blends neighboring shapes into one another.
type SmoothUnion struct {
	Enabled bool
	Blend   float64 // >= 0
}

// Parameters is the full scene: three shape slots plus global effect
// settings. Slot order is blend and z order, slot 0 first.
//
// A Parameters value is owned by one session and mutated in place by the
// input layer (through HitTester) and the settings layer. It is never
// persisted.
type Parameters struct {
	Shapes [ShapeCount]Shape

	GlassColor          GlassColor
	Lighting            Lighting
	Refraction          Refraction
	ChromaticAberration ChromaticAberration
	Blur                Blur
	SmoothUnion         SmoothUnion
}

// NewParameters returns a scene with the default values. Every global
// feature flag is set to allEnabled. Only the first shape slot is enabled.
func NewParameters(allEnabled bool) *Parameters {
	return &Parameters{
		Shapes: DefaultShapes(),
		GlassColor: GlassColor{
			Enabled: allEnabled,
			Color:   RGBA{R: 0.2, G: 0.5, B: 1, A: 0.3},
		},
		Lighting: Lighting{
			Enabled:   allEnabled,
			Angle:     math.Pi / 4,
			Intensity: 1.0,
			Ambient:   0.1,
		},
		Refraction: Refraction{
			Enabled:   allEnabled,
			Thickness: 25,
			Index:     1.5,
		},
		ChromaticAberration: ChromaticAberration{
			Enabled: allEnabled,
			Amount:  0,
		},
		Blur: Blur{
			Enabled: allEnabled,
			Radius:  2,
		},
		SmoothUnion: SmoothUnion{
			Enabled: allEnabled,
			Blend:   100,
		},
	}
}

// DefaultParameters returns NewParameters(true).
func DefaultParameters() *Parameters {
	return NewParameters(true)
}

// DefaultShapes returns the default shape slots: a large squircle in the
// middle (enabled) and two smaller squircles near the corners (disabled).
func DefaultShapes() [ShapeCount]Shape {
	return [ShapeCount]Shape{
		{
			Type:         Squircle,
			Position:     Pt(0.5, 0.5),
			Size:         Sz(200, 200),
			CornerRadius: 80,
			Enabled:      true,
		},
		{
			Type:         Squircle,
			Position:     Pt(0.2, 0.8),
			Size:         Sz(100, 100),
			CornerRadius: 50,
		},
		{
			Type:         Squircle,
			Position:     Pt(0.8, 0.2),
			Size:         Sz(150, 150),
			CornerRadius: 75,
		},
	}
}

// SetShapePosition moves shape i to the normalized position p.
func (p *Parameters) SetShapePosition(i int, pos Point) {
	p.Shapes[i].Position = pos
}

// SetShapeEnabled turns shape slot i on or off.
func (p *Parameters) SetShapeEnabled(i int, on bool) {
	p.Shapes[i].Enabled = on
}

// SetShapeType changes the primitive of shape i.
func (p *Parameters) SetShapeType(i int, t ShapeType) {
	p.Shapes[i].Type = t
}

// SetShapeSize resizes shape i. The corner radius is left as is.
func (p *Parameters) SetShapeSize(i int, s Size) {
	p.Shapes[i].Size = s
}

// SetShapeCornerRadius sets the corner radius of shape i without clamping
// it to MaxCornerRadius.
func (p *Parameters) SetShapeCornerRadius(i int, r float64) {
	p.Shapes[i].CornerRadius = r
}

// EnabledShapes returns the number of enabled shape slots.
func (p *Parameters) EnabledShapes() int {
	n := 0
	for i := range p.Shapes {
		if p.Shapes[i].Enabled {
			n++
		}
	}
	return n
}

// Range is a closed interval used by the settings surface.
type Range struct {
	Min, Max float64
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Ranges holds the slider bounds of the settings surface. The core never
// applies them; they are exported for the settings layer.
var Ranges = struct {
	LightAngle          Range
	LightIntensity      Range
	Ambient             Range
	Thickness           Range
	RefractiveIndex     Range
	ChromaticAberration Range
	BlurRadius          Range
	Blend               Range
	ShapeSide           Range
}{
	LightAngle:          Range{0, 2 * math.Pi},
	LightIntensity:      Range{0, 2},
	Ambient:             Range{0, 1},
	Thickness:           Range{0, 50},
	RefractiveIndex:     Range{1, 2},
	ChromaticAberration: Range{0, 0.2},
	BlurRadius:          Range{0, 4},
	Blend:               Range{0, 200},
	ShapeSide:           Range{0, 200},
}
