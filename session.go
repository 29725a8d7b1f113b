package glass

import "github.com/gogpu/gpucontext"

// SessionOption configures a Session during creation.
//
// Example:
//
//	s := glass.NewSession(glass.Sz(800, 600),
//	    glass.WithParameters(glass.NewParameters(false)))
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	params *Parameters
}

// WithParameters makes the session own p instead of a default scene.
// The caller must not mutate p outside the session afterwards.
func WithParameters(p *Parameters) SessionOption {
	return func(o *sessionOptions) {
		o.params = p
	}
}

// Session is one rendering session of the effect. It exclusively owns the
// scene, tracks the canvas size and routes pointer input to a HitTester.
//
// A Session is not safe for concurrent use; drive it from the UI/render
// thread only.
type Session struct {
	params *Parameters
	canvas Size
	hit    *HitTester
}

// NewSession creates a session for a canvas of the given size. The scene
// starts at DefaultParameters unless WithParameters is given.
func NewSession(canvas Size, opts ...SessionOption) *Session {
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.params == nil {
		o.params = DefaultParameters()
	}
	return &Session{
		params: o.params,
		canvas: canvas,
		hit:    NewHitTester(),
	}
}

// Parameters returns the scene for the settings layer to mutate in place.
func (s *Session) Parameters() *Parameters {
	return s.params
}

// Canvas returns the current canvas size.
func (s *Session) Canvas() Size {
	return s.canvas
}

// Resize updates the canvas size. Shape positions are normalized, so
// shapes keep their relative placement.
func (s *Session) Resize(width, height int) {
	s.canvas = Sz(float64(width), float64(height))
	Logger().Debug("glass: canvas resized", "width", width, "height", height)
}

// Dragging returns the index of the shape being dragged, if any.
func (s *Session) Dragging() (int, bool) {
	return s.hit.Active()
}

// HandleEvent feeds one gesture event to the hit tester.
func (s *Session) HandleEvent(ev Event) bool {
	return s.hit.Handle(s.params, s.canvas, ev)
}

// HandlePointer feeds one W3C pointer event to the hit tester.
func (s *Session) HandlePointer(ev gpucontext.PointerEvent) bool {
	return s.hit.HandlePointer(s.params, s.canvas, ev)
}

// Uniforms encodes the current scene for the current canvas.
func (s *Session) Uniforms() Uniforms {
	return Encode(s.params, s.canvas)
}

// Attach subscribes the session to a pointer event source.
func (s *Session) Attach(src gpucontext.PointerEventSource) {
	src.OnPointer(func(ev gpucontext.PointerEvent) {
		s.HandlePointer(ev)
	})
}

// ResizeSource is the part of gpucontext.EventSource that reports window
// size changes.
type ResizeSource interface {
	OnResize(func(width, height int))
}

var _ ResizeSource = gpucontext.EventSource(nil)

// AttachResize subscribes the session to window resize events.
func (s *Session) AttachResize(src ResizeSource) {
	src.OnResize(s.Resize)
}
