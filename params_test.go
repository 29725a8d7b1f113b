package glass

import (
	"math"
	"testing"
)

func TestNewParametersDefaults(t *testing.T) {
	p := NewParameters(true)

	if !p.GlassColor.Enabled || !p.Lighting.Enabled || !p.Refraction.Enabled ||
		!p.ChromaticAberration.Enabled || !p.Blur.Enabled || !p.SmoothUnion.Enabled {
		t.Error("NewParameters(true) should enable every feature")
	}
	if p.GlassColor.Color != (RGBA{R: 0.2, G: 0.5, B: 1, A: 0.3}) {
		t.Errorf("glass color = %v", p.GlassColor.Color)
	}
	if math.Abs(p.Lighting.Angle-0.785398) > 1e-6 {
		t.Errorf("light angle = %v, want ~0.785398", p.Lighting.Angle)
	}
	if p.Lighting.Intensity != 1 || p.Lighting.Ambient != 0.1 {
		t.Errorf("lighting = %+v", p.Lighting)
	}
	if p.Refraction.Thickness != 25 || p.Refraction.Index != 1.5 {
		t.Errorf("refraction = %+v", p.Refraction)
	}
	if p.Blur.Radius != 2 || p.SmoothUnion.Blend != 100 || p.ChromaticAberration.Amount != 0 {
		t.Errorf("blur/blend/aberration = %v/%v/%v", p.Blur.Radius, p.SmoothUnion.Blend, p.ChromaticAberration.Amount)
	}

	if got := p.EnabledShapes(); got != 1 {
		t.Errorf("EnabledShapes() = %d, want 1", got)
	}
	want := [ShapeCount]struct {
		pos    Point
		size   Size
		radius float64
	}{
		{Pt(0.5, 0.5), Sz(200, 200), 80},
		{Pt(0.2, 0.8), Sz(100, 100), 50},
		{Pt(0.8, 0.2), Sz(150, 150), 75},
	}
	for i, w := range want {
		s := p.Shapes[i]
		if s.Type != Squircle || s.Position != w.pos || s.Size != w.size || s.CornerRadius != w.radius {
			t.Errorf("shape %d = %+v", i, s)
		}
		if s.CornerRadius > s.MaxCornerRadius() {
			t.Errorf("default shape %d violates the corner radius bound", i)
		}
	}
}

func TestNewParametersAllDisabled(t *testing.T) {
	p := NewParameters(false)
	if p.GlassColor.Enabled || p.Lighting.Enabled || p.Refraction.Enabled ||
		p.ChromaticAberration.Enabled || p.Blur.Enabled || p.SmoothUnion.Enabled {
		t.Error("NewParameters(false) should disable every feature")
	}
	// Shape slots do not follow the feature switch.
	if !p.Shapes[0].Enabled {
		t.Error("slot 0 should stay enabled")
	}
}

func TestParametersMutators(t *testing.T) {
	p := DefaultParameters()

	p.SetShapePosition(2, Pt(1.25, -0.5))
	p.SetShapeEnabled(2, true)
	p.SetShapeType(2, RoundedRectangle)
	p.SetShapeSize(2, Sz(40, 60))
	p.SetShapeCornerRadius(2, 500)

	s := p.Shapes[2]
	if s.Position != Pt(1.25, -0.5) || !s.Enabled || s.Type != RoundedRectangle || s.Size != Sz(40, 60) {
		t.Errorf("shape 2 = %+v", s)
	}
	if s.CornerRadius != 500 {
		t.Errorf("CornerRadius = %v, want 500 (no clamping)", s.CornerRadius)
	}
	if got := p.EnabledShapes(); got != 2 {
		t.Errorf("EnabledShapes() = %d, want 2", got)
	}
}

func TestParametersMutatorIndexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("out of range slot index should panic")
		}
	}()
	p := DefaultParameters()
	i := ShapeCount
	p.SetShapeEnabled(i, true)
}

func TestRanges(t *testing.T) {
	if got := Ranges.RefractiveIndex.Clamp(0.5); got != 1 {
		t.Errorf("Clamp(0.5) = %v, want 1", got)
	}
	if got := Ranges.Ambient.Clamp(3); got != 1 {
		t.Errorf("Clamp(3) = %v, want 1", got)
	}
	if got := Ranges.Blend.Clamp(42); got != 42 {
		t.Errorf("Clamp(42) = %v, want 42", got)
	}
	if !Ranges.LightAngle.Contains(2*math.Pi) || Ranges.LightAngle.Contains(-0.1) {
		t.Error("LightAngle range bounds wrong")
	}

	p := DefaultParameters()
	checks := []struct {
		name string
		r    Range
		v    float64
	}{
		{"angle", Ranges.LightAngle, p.Lighting.Angle},
		{"intensity", Ranges.LightIntensity, p.Lighting.Intensity},
		{"ambient", Ranges.Ambient, p.Lighting.Ambient},
		{"thickness", Ranges.Thickness, p.Refraction.Thickness},
		{"index", Ranges.RefractiveIndex, p.Refraction.Index},
		{"aberration", Ranges.ChromaticAberration, p.ChromaticAberration.Amount},
		{"blur", Ranges.BlurRadius, p.Blur.Radius},
		{"blend", Ranges.Blend, p.SmoothUnion.Blend},
	}
	for _, c := range checks {
		if !c.r.Contains(c.v) {
			t.Errorf("default %s %v outside %+v", c.name, c.v, c.r)
		}
	}
}
