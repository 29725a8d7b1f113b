package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glass"
)

func TestShapeLabel(t *testing.T) {
	lf, err := loadLabelFont()
	if err != nil {
		t.Fatalf("loadLabelFont: %v", err)
	}
	for _, typ := range []glass.ShapeType{glass.Squircle, glass.Ellipse, glass.RoundedRectangle} {
		text := typ.String()
		out := shapeLabel(lf.shaping, text)
		if len(out.Glyphs) != len([]rune(text)) {
			t.Errorf("%s: %d glyphs, want %d", text, len(out.Glyphs), len([]rune(text)))
		}
		if out.Advance <= 0 {
			t.Errorf("%s: advance = %v, want positive", text, out.Advance)
		}
		for i, g := range out.Glyphs {
			if g.GlyphID == 0 {
				t.Errorf("%s: glyph %d is .notdef", text, i)
			}
		}
	}
}

func TestDrawLabelsCentered(t *testing.T) {
	const w, h = 120, 60
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	var u glass.Uniforms
	u.Shapes[0].Type = float32(glass.Squircle)
	u.Shapes[0].Center = [2]float32{w / 2, h / 2}
	if err := drawLabels(dst, &u, glass.Sz(w, h)); err != nil {
		t.Fatalf("drawLabels: %v", err)
	}

	minX, maxX, minY, maxY := w, -1, h, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.RGBAAt(x, y).A == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		t.Fatal("no label pixels drawn")
	}
	if mid := (minX + maxX) / 2; mid < w/2-4 || mid > w/2+4 {
		t.Errorf("label spans x [%d, %d], want centered on %d", minX, maxX, w/2)
	}
	if minY < h/2-12 || maxY > h/2+8 {
		t.Errorf("label spans y [%d, %d], want near %d", minY, maxY, h/2)
	}
	if c := dst.RGBAAt(0, 0); c != (color.RGBA{}) {
		t.Errorf("corner pixel = %v, want untouched", c)
	}
}

func TestDrawLabelsSkipsDisabledSlots(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 32, 32))
	var u glass.Uniforms
	if err := drawLabels(dst, &u, glass.Sz(32, 32)); err != nil {
		t.Fatalf("drawLabels: %v", err)
	}
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}
