package glass

import (
	"errors"
	"testing"
)

func TestShapeCenter(t *testing.T) {
	canvas := Sz(640, 480)
	tests := []struct {
		name string
		pos  Point
		want Point
	}{
		{"origin", Pt(0, 0), Pt(0, 0)},
		{"far corner", Pt(1, 1), Pt(640, 480)},
		{"middle", Pt(0.5, 0.5), Pt(320, 240)},
		{"off canvas", Pt(-0.5, 2), Pt(-320, 960)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Shape{Type: Squircle, Position: tt.pos, Size: Sz(10, 10)}
			if got := s.Center(canvas); got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeMaxCornerRadius(t *testing.T) {
	s := Shape{Size: Sz(120, 80)}
	if got := s.MaxCornerRadius(); got != 40 {
		t.Errorf("MaxCornerRadius() = %v, want 40", got)
	}
}

func TestShapeTypeTags(t *testing.T) {
	tests := []struct {
		typ  ShapeType
		tag  float32
		name string
	}{
		{ShapeNone, 0, "None"},
		{Squircle, 1, "Squircle"},
		{Ellipse, 2, "Ellipse"},
		{RoundedRectangle, 3, "Rounded Rectangle"},
		{ShapeType(9), 9, "ShapeType(9)"},
	}
	for _, tt := range tests {
		if got := tt.typ.Tag(); got != tt.tag {
			t.Errorf("%v.Tag() = %v, want %v", tt.typ, got, tt.tag)
		}
		if got := tt.typ.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
	if Ellipse.HasCorners() {
		t.Error("ellipses have no corner radius")
	}
	if !Squircle.HasCorners() || !RoundedRectangle.HasCorners() {
		t.Error("squircles and rounded rectangles use the corner radius")
	}
}

func TestParseShapeType(t *testing.T) {
	tests := []struct {
		in   string
		want ShapeType
	}{
		{"Squircle", Squircle},
		{"squircle", Squircle},
		{"ELLIPSE", Ellipse},
		{"Rounded Rectangle", RoundedRectangle},
		{"rounded-rectangle", RoundedRectangle},
		{"rounded_rectangle", RoundedRectangle},
		{"RoundedRectangle", RoundedRectangle},
		{"  ellipse ", Ellipse},
		{"1", Squircle},
		{"3", RoundedRectangle},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShapeType(tt.in)
			if err != nil {
				t.Fatalf("ParseShapeType(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseShapeType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "circle", "none", "0", "4"} {
		if _, err := ParseShapeType(bad); !errors.Is(err, ErrUnknownShapeType) {
			t.Errorf("ParseShapeType(%q) error = %v, want ErrUnknownShapeType", bad, err)
		}
	}
}

func TestShapeTypesOrder(t *testing.T) {
	types := ShapeTypes()
	if len(types) != 3 {
		t.Fatalf("len(ShapeTypes()) = %d, want 3", len(types))
	}
	for i, typ := range types {
		if int(typ) != i+1 {
			t.Errorf("ShapeTypes()[%d] = %v, want tag %d", i, typ, i+1)
		}
	}
}
