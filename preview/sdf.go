package preview

import (
	"math"

	"github.com/gogpu/glass"
)

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const sdfAntialiasWidth = 0.7

// far is the distance reported for an empty slot.
const far = 1e6

// sdfRRect computes the signed distance from a point to a rounded rectangle.
// Negative values are inside, positive values are outside. The corner
// radius is limited to the half extent of the shorter side.
func sdfRRect(px, py, halfW, halfH, cornerRadius float64) float64 {
	r := math.Max(0, math.Min(cornerRadius, math.Min(halfW, halfH)))

	// Work in the first quadrant.
	dx := math.Abs(px) - halfW + r
	dy := math.Abs(py) - halfH + r

	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside - r
}

// sdfEllipse approximates the signed distance to an axis-aligned ellipse.
func sdfEllipse(px, py, halfW, halfH float64) float64 {
	hw, hh := math.Max(halfW, 0.001), math.Max(halfH, 0.001)
	k0 := math.Hypot(px/hw, py/hh)
	k1 := math.Hypot(px/(hw*hw), py/(hh*hh))
	// The gradient vanishes at the center.
	if k1 < 0.0001 {
		return -math.Min(hw, hh)
	}
	return k0 * (k0 - 1) / k1
}

// sdfSquircle blends a degree 4 superellipse with the rounded rectangle;
// the corner radius relative to the short half side sets the blend.
func sdfSquircle(px, py, halfW, halfH, cornerRadius float64) float64 {
	hw, hh := math.Max(halfW, 0.001), math.Max(halfH, 0.001)
	qx, qy := math.Abs(px)/hw, math.Abs(py)/hh
	qx2, qy2 := qx*qx, qy*qy
	n := math.Sqrt(math.Sqrt(qx2*qx2 + qy2*qy2))
	short := math.Min(hw, hh)
	d := (n - 1) * short
	box := sdfRRect(px, py, halfW, halfH, cornerRadius)
	t := clamp(cornerRadius/short, 0, 1)
	return box + (d-box)*t
}

// sdfShape evaluates one encoded shape slot at pixel (px, py).
func sdfShape(s *glass.ShapeUniforms, px, py float64) float64 {
	lx := px - float64(s.Center[0])
	ly := py - float64(s.Center[1])
	hw, hh := float64(s.Size[0])/2, float64(s.Size[1])/2
	r := float64(s.CornerRadius)
	switch glass.ShapeType(math.Round(float64(s.Type))) {
	case glass.Squircle:
		return sdfSquircle(lx, ly, hw, hh, r)
	case glass.Ellipse:
		return sdfEllipse(lx, ly, hw, hh)
	case glass.RoundedRectangle:
		return sdfRRect(lx, ly, hw, hh, r)
	default:
		return far
	}
}

// smin is the polynomial smooth minimum with blend width k in pixels.
func smin(a, b, k float64) float64 {
	if k <= 0 {
		return math.Min(a, b)
	}
	h := clamp(0.5+0.5*(b-a)/k, 0, 1)
	return b + (a-b)*h - k*h*(1-h)
}

// field is the combined distance field of an encoded scene.
type field struct {
	u *glass.Uniforms
}

func (f field) combine(a, b float64) float64 {
	if f.u.Switches.SmoothUnion > 0.5 {
		return smin(a, b, float64(f.u.Blend))
	}
	return math.Min(a, b)
}

func (f field) at(px, py float64) float64 {
	d := sdfShape(&f.u.Shapes[0], px, py)
	for i := 1; i < len(f.u.Shapes); i++ {
		d = f.combine(d, sdfShape(&f.u.Shapes[i], px, py))
	}
	return d
}

// normal returns the unit gradient of the field by central differences.
func (f field) normal(px, py float64) (float64, float64) {
	dx := f.at(px+1, py) - f.at(px-1, py)
	dy := f.at(px, py+1) - f.at(px, py-1)
	l := math.Hypot(dx, dy)
	if l < 1e-5 {
		return 0, 0
	}
	return dx / l, dy / l
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
