package preview

import (
	"errors"
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/internal/parallel"
	xdraw "golang.org/x/image/draw"
)

// ErrEmptyTarget is returned when the destination image has no pixels.
var ErrEmptyTarget = errors.New("preview: empty destination image")

// Option configures Render.
type Option func(*options)

type options struct {
	labels  bool
	interp  xdraw.Interpolator
	workers int
}

func defaultOptions() options {
	return options{
		interp:  xdraw.ApproxBiLinear,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithLabels draws each enabled shape's type name at its center.
func WithLabels() Option {
	return func(o *options) {
		o.labels = true
	}
}

// WithInterpolator sets how the background is scaled to the destination
// size. The default is draw.ApproxBiLinear.
func WithInterpolator(i xdraw.Interpolator) Option {
	return func(o *options) {
		if i != nil {
			o.interp = i
		}
	}
}

// WithWorkers sets the number of goroutines shading row bands. Values
// below 1 mean one.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// bandHeight is the number of rows shaded per work item.
const bandHeight = 16

// Renderer shades frames on a pool of worker goroutines. Reuse one across
// frames to avoid restarting the workers; call Close when done.
type Renderer struct {
	opts options
	pool *parallel.Pool
}

// NewRenderer starts a renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o, pool: parallel.NewPool(o.workers)}
}

// Close stops the worker goroutines. Rendering after Close still works but
// runs on the calling goroutine.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Render shades dst with the glass effect described by u over background.
//
// The background is scaled to dst's size first. Pixel centers map onto the
// record's canvas, so a record encoded for another canvas size is stretched
// to fit. A nil background renders over mid gray.
func Render(dst *image.RGBA, background image.Image, u glass.Uniforms, opts ...Option) error {
	r := NewRenderer(opts...)
	defer r.Close()
	return r.Render(dst, background, u)
}

// Render shades one frame. See the package-level Render.
func (r *Renderer) Render(dst *image.RGBA, background image.Image, u glass.Uniforms) error {
	if dst == nil || dst.Bounds().Empty() {
		return ErrEmptyTarget
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	if background == nil {
		xdraw.Draw(bg, bg.Bounds(), image.NewUniform(color.Gray{Y: 128}), image.Point{}, xdraw.Src)
	} else {
		r.opts.interp.Scale(bg, bg.Bounds(), background, background.Bounds(), xdraw.Src, nil)
	}

	s := shader{
		dst:    dst,
		bg:     sampler{img: bg},
		f:      field{u: &u},
		u:      &u,
		w:      float64(w),
		h:      float64(h),
		canvas: glass.Sz(float64(u.CanvasSize[0]), float64(u.CanvasSize[1])),
	}
	if s.canvas.Empty() {
		s.canvas = glass.Sz(s.w, s.h)
	}

	r.pool.Rows(h, bandHeight, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			s.row(y)
		}
	})

	if r.opts.labels {
		if err := drawLabels(dst, &u, s.canvas); err != nil {
			return err
		}
	}
	glass.Logger().Debug("preview: frame rendered", "width", w, "height", h, "workers", r.pool.Workers())
	return nil
}

// rgba is a premultiplied color with components in [0, 1].
type rgba struct {
	r, g, b, a float64
}

func (c rgba) add(o rgba) rgba { return rgba{c.r + o.r, c.g + o.g, c.b + o.b, c.a + o.a} }

func (c rgba) scale(s float64) rgba { return rgba{c.r * s, c.g * s, c.b * s, c.a * s} }

func (c rgba) lerp(o rgba, t float64) rgba {
	return rgba{c.r + (o.r-c.r)*t, c.g + (o.g-c.g)*t, c.b + (o.b-c.b)*t, c.a + (o.a-c.a)*t}
}

// sampler does clamp-to-edge bilinear lookups in normalized coordinates.
type sampler struct {
	img *image.RGBA
}

func (s sampler) texel(x, y int) rgba {
	b := s.img.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	return rgba{float64(p[0]) / 255, float64(p[1]) / 255, float64(p[2]) / 255, float64(p[3]) / 255}
}

func (s sampler) at(u, v float64) rgba {
	b := s.img.Bounds()
	x := u*float64(b.Dx()) - 0.5
	y := v*float64(b.Dy()) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)
	top := s.texel(ix, iy).lerp(s.texel(ix+1, iy), fx)
	bot := s.texel(ix, iy+1).lerp(s.texel(ix+1, iy+1), fx)
	return top.lerp(bot, fy)
}

// shader evaluates the kernel for one frame.
type shader struct {
	dst    *image.RGBA
	bg     sampler
	f      field
	u      *glass.Uniforms
	w, h   float64
	canvas glass.Size
}

func (r *shader) row(y int) {
	b := r.dst.Bounds()
	v := (float64(y) + 0.5) / r.h
	for x := 0; x < b.Dx(); x++ {
		uv := (float64(x) + 0.5) / r.w
		c := r.shade(uv, v)
		i := r.dst.PixOffset(b.Min.X+x, b.Min.Y+y)
		a := clamp(c.a, 0, 1)
		r.dst.Pix[i+0] = uint8(math.Round(clamp(c.r, 0, a) * 255))
		r.dst.Pix[i+1] = uint8(math.Round(clamp(c.g, 0, a) * 255))
		r.dst.Pix[i+2] = uint8(math.Round(clamp(c.b, 0, a) * 255))
		r.dst.Pix[i+3] = uint8(math.Round(a * 255))
	}
}

// blurred returns the background at (u, v), box filtered over a 3x3
// neighbourhood when blur is on.
func (r *shader) blurred(u, v float64) rgba {
	radius := float64(r.u.BlurRadius)
	if r.u.Switches.Blur < 0.5 || radius <= 0 {
		return r.bg.at(u, v)
	}
	sx, sy := radius/r.canvas.W, radius/r.canvas.H
	var acc rgba
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			acc = acc.add(r.bg.at(u+float64(i)*sx, v+float64(j)*sy))
		}
	}
	return acc.scale(1.0 / 9)
}

func (r *shader) shade(u, v float64) rgba {
	px, py := u*r.canvas.W, v*r.canvas.H
	bg := r.bg.at(u, v)
	d := r.f.at(px, py)
	coverage := smoothstepCoverage(d)
	if coverage <= 0 {
		return bg
	}

	nx, ny := r.f.normal(px, py)
	thickness := math.Max(float64(r.u.Thickness), 0.001)
	edge := 1 - clamp(-d/thickness, 0, 1)

	var ox, oy float64
	if r.u.Switches.Refraction > 0.5 {
		bend := 1 - 1/math.Max(float64(r.u.RefractiveIndex), 1)
		k := edge * edge * thickness * bend
		ox, oy = nx*k, ny*k
	}

	su, sv := u-ox/r.canvas.W, v-oy/r.canvas.H
	col := r.blurred(su, sv)
	if amount := float64(r.u.ChromaticAberration); r.u.Switches.ChromaticAberration > 0.5 && amount > 0 {
		du := ox * amount / r.canvas.W * 10
		dv := oy * amount / r.canvas.H * 10
		col.r = r.blurred(su-du, sv-dv).r
		col.b = r.blurred(su+du, sv+dv).b
	}

	if r.u.Switches.GlassColor > 0.5 {
		gc := r.u.GlassColor
		t := float64(gc[3])
		col.r += (float64(gc[0])*col.a - col.r) * t
		col.g += (float64(gc[1])*col.a - col.g) * t
		col.b += (float64(gc[2])*col.a - col.b) * t
	}

	if r.u.Switches.Lighting > 0.5 {
		lx, ly := math.Cos(float64(r.u.LightAngle)), math.Sin(float64(r.u.LightAngle))
		facing := math.Max(-(nx*lx + ny*ly), 0)
		rim := edge * edge * edge * facing * float64(r.u.LightIntensity)
		lift := (rim + float64(r.u.AmbientStrength)) * col.a
		col.r = math.Min(col.r+lift, col.a)
		col.g = math.Min(col.g+lift, col.a)
		col.b = math.Min(col.b+lift, col.a)
	}

	return bg.lerp(col, coverage)
}

