// Package shader holds the liquid glass kernel and its uniform buffer layout.
//
// The kernel is a single WGSL module (vs_main + fs_main) whose uniform
// struct mirrors glass.Schema member for member. Pack turns a
// glass.Uniforms record into the exact byte image the kernel expects, and
// CheckSchema verifies, through naga reflection, that the WGSL declaration
// and the Go schema have not drifted apart.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/glass"
)

//go:embed liquid_glass.wgsl
var source string

// Source returns the WGSL source of the kernel.
func Source() string {
	return source
}

// Kernel entry points and resource names.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
	UniformStruct = "LiquidGlassUniforms"
)

// Bind group 0 slots.
const (
	UniformBinding    = 0
	BackgroundBinding = 1
	SamplerBinding    = 2
)

// UniformSize is the byte size of the uniform buffer, padded to the 16 byte
// struct alignment of the uniform address space.
const UniformSize = 160

// ErrShortBuffer is returned by PackInto when dst is smaller than UniformSize.
var ErrShortBuffer = errors.New("shader: destination buffer smaller than UniformSize")

// Member is one member of the uniform struct as laid out in the buffer.
type Member struct {
	Name   string
	Kind   glass.Kind
	Offset uint32
	Size   uint32
}

// alignOf returns the WGSL alignment of a kind.
func alignOf(k glass.Kind) uint32 {
	switch k {
	case glass.KindFloat2:
		return 8
	case glass.KindColor:
		return 16
	default:
		return 4
	}
}

func roundUp(v, align uint32) uint32 {
	return (v + align - 1) / align * align
}

var layout, layoutSize = computeLayout()

func computeLayout() ([]Member, uint32) {
	fields := glass.Schema()
	members := make([]Member, len(fields))
	var off, maxAlign uint32 = 0, 4
	for i, f := range fields {
		a := alignOf(f.Kind)
		if a > maxAlign {
			maxAlign = a
		}
		off = roundUp(off, a)
		size := uint32(f.Kind.Components()) * 4 //nolint:gosec // at most 4 components
		members[i] = Member{Name: f.Name, Kind: f.Kind, Offset: off, Size: size}
		off += size
	}
	return members, roundUp(off, maxAlign)
}

// Layout returns the uniform struct members in declaration order with
// their byte offsets. The result is a fresh copy.
func Layout() []Member {
	out := make([]Member, len(layout))
	copy(out, layout)
	return out
}

// Pack encodes u into a new UniformSize byte buffer.
func Pack(u glass.Uniforms) []byte {
	buf := make([]byte, UniformSize)
	_ = PackInto(buf, u)
	return buf
}

// PackInto encodes u into dst, which must hold at least UniformSize bytes.
// Padding bytes are zeroed. Values are little-endian f32.
func PackInto(dst []byte, u glass.Uniforms) error {
	if len(dst) < UniformSize {
		return fmt.Errorf("%w: have %d bytes", ErrShortBuffer, len(dst))
	}
	clear(dst[:UniformSize])
	vals := u.Values()
	for i, v := range vals {
		m := layout[i]
		for c := 0; c < v.Kind.Components(); c++ {
			o := m.Offset + uint32(c)*4 //nolint:gosec // c < 4
			binary.LittleEndian.PutUint32(dst[o:o+4], math.Float32bits(v.V[c]))
		}
	}
	return nil
}

// Unpack decodes a buffer produced by Pack back into its flat components in
// parameter order. It is the inverse of Uniforms.Floats over the packed
// image and is mainly useful for inspecting uploaded buffers.
func Unpack(buf []byte) ([]float32, error) {
	if len(buf) < UniformSize {
		return nil, fmt.Errorf("%w: have %d bytes", ErrShortBuffer, len(buf))
	}
	out := make([]float32, 0, 48)
	for _, m := range layout {
		for c := uint32(0); c < m.Size/4; c++ {
			o := m.Offset + c*4
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(buf[o:o+4])))
		}
	}
	return out, nil
}

func init() {
	if layoutSize != UniformSize {
		panic(fmt.Sprintf("shader: uniform layout is %d bytes, UniformSize is %d", layoutSize, UniformSize))
	}
}
