package glass

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gputypes"
)

// RGBA represents a non-premultiplied color with red, green, blue, and alpha
// components. Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

// RGBA implements color.Color. The result is alpha-premultiplied as the
// interface requires.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A) * 0xffff)
	r = uint32(clamp01(c.R) * clamp01(c.A) * 0xffff)
	g = uint32(clamp01(c.G) * clamp01(c.A) * 0xffff)
	b = uint32(clamp01(c.B) * clamp01(c.A) * 0xffff)
	return r, g, b, a
}

// FromColor converts a standard color.Color to a non-premultiplied RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// ErrInvalidHex is returned by ParseHex for malformed input.
var ErrInvalidHex = errors.New("glass: invalid hex color")

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
func ParseHex(hex string) (RGBA, error) {
	s := strings.TrimPrefix(hex, "#")

	var digits [8]uint32
	for i := 0; i < len(s) && i < len(digits); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
		}
		digits[i] = d
	}

	var r, g, b, a uint32
	a = 255
	switch len(s) {
	case 3, 4:
		r, g, b = digits[0]*17, digits[1]*17, digits[2]*17
		if len(s) == 4 {
			a = digits[3] * 17
		}
	case 6, 8:
		r, g, b = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(s) == 8 {
			a = digits[6]<<4 | digits[7]
		}
	default:
		return RGBA{}, fmt.Errorf("%w: %q has %d digits", ErrInvalidHex, hex, len(s))
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// Hex is like ParseHex but yields opaque black for malformed input.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return RGBA{A: 1}
	}
	return c
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	default:
		return 0, false
	}
}

// GPU converts the color to the gputypes representation used for clear
// values and blend constants.
func (c RGBA) GPU() gputypes.Color {
	return gputypes.NewColor(c.R, c.G, c.B, c.A)
}

// Float32 returns the components as a float32 vector in R, G, B, A order.
func (c RGBA) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
