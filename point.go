package glass

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Rate returns p expressed as a fraction of size: (X/W, Y/H).
// No clamping is applied, so points outside the canvas map outside [0,1].
func (p Point) Rate(size Size) Point {
	return Point{X: p.X / size.W, Y: p.Y / size.H}
}

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Max returns the larger of the two dimensions.
func (s Size) Max() float64 {
	return math.Max(s.W, s.H)
}

// Min returns the smaller of the two dimensions.
func (s Size) Min() float64 {
	return math.Min(s.W, s.H)
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}
