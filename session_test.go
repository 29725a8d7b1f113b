package glass

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

// fakeSource records the callbacks a session registers.
type fakeSource struct {
	pointer func(gpucontext.PointerEvent)
	resize  func(width, height int)
}

func (f *fakeSource) OnPointer(fn func(gpucontext.PointerEvent)) { f.pointer = fn }
func (f *fakeSource) OnResize(fn func(width, height int))        { f.resize = fn }

var (
	_ gpucontext.PointerEventSource = (*fakeSource)(nil)
	_ ResizeSource                  = (*fakeSource)(nil)
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(Sz(800, 600))
	if s.Canvas() != Sz(800, 600) {
		t.Errorf("Canvas() = %v", s.Canvas())
	}
	if *s.Parameters() != *DefaultParameters() {
		t.Error("session should start from the default scene")
	}
	if _, ok := s.Dragging(); ok {
		t.Error("new session should not be dragging")
	}
}

func TestNewSessionWithParameters(t *testing.T) {
	p := NewParameters(false)
	s := NewSession(Sz(10, 10), WithParameters(p))
	if s.Parameters() != p {
		t.Error("WithParameters should hand ownership of p to the session")
	}
}

func TestSessionDragAndUniforms(t *testing.T) {
	s := NewSession(Sz(800, 600))
	if !s.HandleEvent(Event{Phase: PhaseBegin, Point: Pt(400, 300)}) {
		t.Fatal("begin missed")
	}
	s.HandleEvent(Event{Phase: PhaseChange, Point: Pt(200, 450)})
	s.HandleEvent(Event{Phase: PhaseEnd})

	u := s.Uniforms()
	if u.Shapes[0].Center != [2]float32{200, 450} {
		t.Errorf("encoded center = %v, want (200,450)", u.Shapes[0].Center)
	}
}

func TestSessionResizeKeepsRelativePlacement(t *testing.T) {
	s := NewSession(Sz(800, 600))
	s.Resize(400, 300)
	if s.Canvas() != Sz(400, 300) {
		t.Fatalf("Canvas() = %v", s.Canvas())
	}
	u := s.Uniforms()
	if u.CanvasSize != [2]float32{400, 300} || u.Shapes[0].Center != [2]float32{200, 150} {
		t.Errorf("after resize: canvas %v center %v", u.CanvasSize, u.Shapes[0].Center)
	}
}

func TestSessionAttach(t *testing.T) {
	s := NewSession(Sz(800, 600))
	src := &fakeSource{}
	s.Attach(src)
	s.AttachResize(src)
	if src.pointer == nil || src.resize == nil {
		t.Fatal("session did not register callbacks")
	}

	src.pointer(gpucontext.PointerEvent{Type: gpucontext.PointerDown, PointerID: 1, X: 400, Y: 300, IsPrimary: true})
	if i, ok := s.Dragging(); !ok || i != 0 {
		t.Fatalf("Dragging() = (%d, %v), want (0, true)", i, ok)
	}
	src.pointer(gpucontext.PointerEvent{Type: gpucontext.PointerMove, PointerID: 1, X: 80, Y: 60})
	src.pointer(gpucontext.PointerEvent{Type: gpucontext.PointerUp, PointerID: 1, X: 80, Y: 60})
	if _, ok := s.Dragging(); ok {
		t.Error("pointer up should end the drag")
	}
	if got := s.Parameters().Shapes[0].Position; got != Pt(0.1, 0.1) {
		t.Errorf("Position = %v, want (0.1,0.1)", got)
	}

	src.resize(1024, 768)
	if s.Canvas() != Sz(1024, 768) {
		t.Errorf("Canvas() = %v after resize event", s.Canvas())
	}
}

func TestSessionAttachNullSource(t *testing.T) {
	s := NewSession(Sz(100, 100))
	s.Attach(gpucontext.NullPointerEventSource{})
	if _, ok := s.Dragging(); ok {
		t.Error("null source should not produce events")
	}
}
