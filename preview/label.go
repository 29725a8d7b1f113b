package preview

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/glass"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// labelSize is the label size in pixels per em.
const labelSize = 13

// labelFont holds Go Regular parsed twice: go-text shapes the run and sfnt
// supplies the outlines. Both see the same glyph indices.
type labelFont struct {
	shaping *gotext.Font
	outline *opentype.Font
}

var loadLabelFont = sync.OnceValues(func() (*labelFont, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("preview: parse label font: %w", err)
	}
	outline, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("preview: parse label font: %w", err)
	}
	return &labelFont{shaping: face.Font, outline: outline}, nil
})

// shapeLabel lays text out as one left-to-right run.
func shapeLabel(f *gotext.Font, text string) shaping.Output {
	runes := []rune(text)
	script := language.Latin
	if len(runes) > 0 {
		script = language.LookupScript(runes[0])
	}
	// HarfbuzzShaper is not safe for concurrent use.
	var hb shaping.HarfbuzzShaper
	return hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      fixed.I(labelSize),
		Script:    script,
		Language:  language.NewLanguage("en"),
	})
}

// drawLabels writes the type name of every enabled shape at its center.
func drawLabels(dst *image.RGBA, u *glass.Uniforms, canvas glass.Size) error {
	lf, err := loadLabelFont()
	if err != nil {
		return err
	}

	var buf sfnt.Buffer
	ppem := fixed.I(labelSize)
	m, err := lf.outline.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return fmt.Errorf("preview: label metrics: %w", err)
	}

	b := dst.Bounds()
	sx, sy := float64(b.Dx())/canvas.W, float64(b.Dy())/canvas.H
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	drawn := false
	for i := range u.Shapes {
		s := &u.Shapes[i]
		if s.Type == 0 {
			continue
		}
		out := shapeLabel(lf.shaping, glass.ShapeType(math.Round(float64(s.Type))).String())

		// Rasterizer coordinates are relative to b.Min.
		x := float64(s.Center[0])*sx - fixedToFloat(out.Advance)/2
		y := float64(s.Center[1])*sy + fixedToFloat(m.CapHeight)/2
		for _, g := range out.Glyphs {
			segs, err := lf.outline.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
			if err != nil {
				return fmt.Errorf("preview: label glyph %d: %w", g.GlyphID, err)
			}
			// Shaping offsets are y-up, outlines are y-down.
			addOutline(r, segs, x+fixedToFloat(g.XOffset), y-fixedToFloat(g.YOffset))
			x += fixedToFloat(g.Advance)
			drawn = drawn || len(segs) > 0
		}
	}
	if drawn {
		r.Draw(dst, b, image.White, image.Point{})
	}
	return nil
}

// addOutline appends one glyph's contours to r with the origin at (ox, oy).
func addOutline(r *vector.Rasterizer, segs sfnt.Segments, ox, oy float64) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(ox + fixedToFloat(p.X)), float32(oy + fixedToFloat(p.Y))
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.ClosePath()
			r.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	r.ClosePath()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
