package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/glass"
	"golang.org/x/image/colornames"
)

// drag is one scripted gesture from a start point to an end point, in
// canvas pixels.
type drag struct {
	from, to glass.Point
}

// dragList implements flag.Value for -drag.
type dragList []drag

func (l *dragList) String() string {
	parts := make([]string, len(*l))
	for i, d := range *l {
		parts[i] = fmt.Sprintf("%g,%g:%g,%g", d.from.X, d.from.Y, d.to.X, d.to.Y)
	}
	return strings.Join(parts, ";")
}

func (l *dragList) Set(s string) error {
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		from, to, ok := strings.Cut(item, ":")
		if !ok {
			return fmt.Errorf("drag %q: want x0,y0:x1,y1", item)
		}
		p0, err := parsePoint(from)
		if err != nil {
			return fmt.Errorf("drag %q: %w", item, err)
		}
		p1, err := parsePoint(to)
		if err != nil {
			return fmt.Errorf("drag %q: %w", item, err)
		}
		*l = append(*l, drag{from: p0, to: p1})
	}
	return nil
}

func parsePoint(s string) (glass.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return glass.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return glass.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return glass.Point{}, err
	}
	return glass.Pt(x, y), nil
}

// shapeSetting assigns a type to one slot.
type shapeSetting struct {
	index int
	typ   glass.ShapeType
}

// shapeList implements flag.Value for -shape.
type shapeList []shapeSetting

func (l *shapeList) String() string {
	parts := make([]string, len(*l))
	for i, s := range *l {
		parts[i] = fmt.Sprintf("%d=%s", s.index, s.typ)
	}
	return strings.Join(parts, ",")
}

func (l *shapeList) Set(s string) error {
	is, ts, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("shape %q: want index=type", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(is))
	if err != nil {
		return fmt.Errorf("shape %q: %w", s, err)
	}
	if i < 0 || i >= glass.ShapeCount {
		return fmt.Errorf("shape %q: index out of range [0,%d)", s, glass.ShapeCount)
	}
	t, err := glass.ParseShapeType(ts)
	if err != nil {
		return fmt.Errorf("shape %q: %w", s, err)
	}
	*l = append(*l, shapeSetting{index: i, typ: t})
	return nil
}

// parseTint reads a glass tint as an SVG color name or a hex string. The
// opacity is kept from the current tint unless the hex form carries one.
func parseTint(s string, current glass.RGBA) (glass.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := glass.ParseHex(s)
		if err != nil {
			return glass.RGBA{}, fmt.Errorf("tint: %w", err)
		}
		if n := len(s) - 1; n != 4 && n != 8 {
			c.A = current.A
		}
		return c, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return glass.RGBA{}, fmt.Errorf("tint %q: unknown color name", s)
	}
	c := glass.FromColor(named)
	c.A = current.A
	return c, nil
}
