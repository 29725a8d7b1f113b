package glass

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ShapeType identifies an SDF primitive. Its numeric value is the tag the
// kernel receives for a shape slot.
type ShapeType uint8

const (
	// ShapeNone is the inert tag. The kernel skips SDF evaluation for a slot
	// carrying it. It is emitted for disabled slots and never stored in a Shape.
	ShapeNone ShapeType = iota
	// Squircle is a superellipse interpolating between rectangle and ellipse.
	Squircle
	// Ellipse is an axis-aligned ellipse inscribed in the shape size.
	Ellipse
	// RoundedRectangle is a rectangle with circular corners.
	RoundedRectangle
)

// ErrUnknownShapeType is returned by ParseShapeType for unrecognized names.
var ErrUnknownShapeType = errors.New("glass: unknown shape type")

// ShapeTypes returns the selectable shape types in tag order.
func ShapeTypes() []ShapeType {
	return []ShapeType{Squircle, Ellipse, RoundedRectangle}
}

// String returns the display name of the shape type.
func (t ShapeType) String() string {
	switch t {
	case ShapeNone:
		return "None"
	case Squircle:
		return "Squircle"
	case Ellipse:
		return "Ellipse"
	case RoundedRectangle:
		return "Rounded Rectangle"
	default:
		return fmt.Sprintf("ShapeType(%d)", uint8(t))
	}
}

// Tag returns the value emitted to the kernel for this type.
func (t ShapeType) Tag() float32 {
	return float32(t)
}

// HasCorners reports whether the corner radius affects this type.
func (t ShapeType) HasCorners() bool {
	return t == Squircle || t == RoundedRectangle
}

var shapeFold = cases.Fold()

// ParseShapeType parses a shape type from its display name or numeric tag.
// Matching is case-insensitive and ignores spaces, hyphens and underscores,
// so "rounded-rectangle", "RoundedRectangle" and "3" all parse.
func ParseShapeType(s string) (ShapeType, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(shapeFold.String(strings.TrimSpace(s)))
	for _, t := range ShapeTypes() {
		name := strings.ReplaceAll(shapeFold.String(t.String()), " ", "")
		if key == name || key == fmt.Sprint(uint8(t)) {
			return t, nil
		}
	}
	return ShapeNone, fmt.Errorf("%w: %q", ErrUnknownShapeType, s)
}

// Shape describes one SDF primitive of the scene.
type Shape struct {
	Type ShapeType

	// Position is the shape center as a fraction of the canvas size.
	Position Point

	// Size is the width and height in pixels.
	Size Size

	// CornerRadius is in pixels and ignored for ellipses. It is expected to
	// stay within MaxCornerRadius but is not validated here.
	CornerRadius float64

	Enabled bool
}

// Center returns the shape center in canvas pixels.
// The canvas dimensions must be positive.
func (s Shape) Center(canvas Size) Point {
	return Point{X: s.Position.X * canvas.W, Y: s.Position.Y * canvas.H}
}

// MaxCornerRadius returns the largest corner radius that keeps the corners
// from overlapping: half the smaller side.
func (s Shape) MaxCornerRadius() float64 {
	return s.Size.Min() / 2
}

// hitRadius is the pick distance around the center: half the larger side.
func (s Shape) hitRadius() float64 {
	return 0.5 * s.Size.Max()
}
