package glass

import (
	"math"

	"github.com/gogpu/gpucontext"
)

// Phase is the phase of a drag gesture event.
type Phase uint8

const (
	// PhaseBegin starts a gesture (pointer down).
	PhaseBegin Phase = iota
	// PhaseChange reports pointer movement during a gesture.
	PhaseChange
	// PhaseEnd finishes a gesture (pointer up or cancel).
	PhaseEnd
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "Begin"
	case PhaseChange:
		return "Change"
	case PhaseEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Event is one gesture event with a pointer location in canvas pixels.
type Event struct {
	Phase Phase
	Point Point
}

// noShape is the index held while idle.
const noShape = -1

// HitTester picks the shape nearest to a pointer and drags it.
//
// It has two states: idle, and dragging one shape index. The scene is
// borrowed for the duration of each call and never retained.
//
// The zero value is not ready for use; create one with NewHitTester.
type HitTester struct {
	index int

	// Gesture tracking for HandlePointer.
	pointerID int
	tracking  bool
}

// NewHitTester returns an idle hit tester.
func NewHitTester() *HitTester {
	return &HitTester{index: noShape}
}

// Active returns the index of the dragged shape, if any.
func (h *HitTester) Active() (int, bool) {
	return h.index, h.index != noShape
}

// Pick returns the index of the shape whose center is nearest to pointer,
// provided the pointer lies strictly within half the larger side of that
// shape. Disabled shapes are candidates too. Ties go to the lowest index.
//
// Only the nearest shape's own radius is tested: a pointer inside a farther
// shape's radius but nearer another center picks nothing.
func Pick(p *Parameters, canvas Size, pointer Point) (int, bool) {
	best := noShape
	bestDist := math.Inf(1)
	for i := range p.Shapes {
		d := pointer.Distance(p.Shapes[i].Center(canvas))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == noShape || bestDist >= p.Shapes[best].hitRadius() {
		return noShape, false
	}
	return best, true
}

// Begin starts a drag at pointer. It picks a shape with Pick and enters the
// dragging state on success; the shape is not moved until the next Move.
// A miss leaves the tester idle and the scene untouched.
//
// Begin during an active drag is ignored and reports true.
func (h *HitTester) Begin(p *Parameters, canvas Size, pointer Point) bool {
	if h.index != noShape {
		return true
	}
	i, ok := Pick(p, canvas, pointer)
	if !ok {
		Logger().Debug("glass: drag missed", "x", pointer.X, "y", pointer.Y)
		return false
	}
	h.index = i
	Logger().Debug("glass: drag began", "shape", i, "x", pointer.X, "y", pointer.Y)
	return true
}

// Move moves the dragged shape so that its center follows pointer. The new
// position is pointer divided by the canvas size, without clamping; it may
// leave [0,1].
//
// While idle, Move retries the hit test first so a gesture that slides onto
// a shape captures it. It reports whether a shape was moved.
func (h *HitTester) Move(p *Parameters, canvas Size, pointer Point) bool {
	if h.index == noShape && !h.Begin(p, canvas, pointer) {
		return false
	}
	p.SetShapePosition(h.index, pointer.Rate(canvas))
	return true
}

// End finishes the gesture and returns to idle.
func (h *HitTester) End() {
	if h.index != noShape {
		Logger().Debug("glass: drag ended", "shape", h.index)
	}
	h.index = noShape
}

// Handle dispatches a gesture event. It reports whether the scene changed
// or a shape was picked.
func (h *HitTester) Handle(p *Parameters, canvas Size, ev Event) bool {
	switch ev.Phase {
	case PhaseBegin:
		return h.Begin(p, canvas, ev.Point)
	case PhaseChange:
		return h.Move(p, canvas, ev.Point)
	case PhaseEnd:
		_, active := h.Active()
		h.End()
		return active
	default:
		return false
	}
}

// HandlePointer adapts a W3C pointer event to the gesture phases:
// PointerDown begins, PointerMove changes and PointerUp or PointerCancel
// ends. Only the primary pointer opens a gesture, and only the pointer that
// opened it drives it until it ends. Moves outside a gesture (hover) are
// ignored.
func (h *HitTester) HandlePointer(p *Parameters, canvas Size, ev gpucontext.PointerEvent) bool {
	pt := Pt(ev.X, ev.Y)
	switch ev.Type {
	case gpucontext.PointerDown:
		if h.tracking || !ev.IsPrimary {
			return false
		}
		h.tracking = true
		h.pointerID = ev.PointerID
		return h.Handle(p, canvas, Event{Phase: PhaseBegin, Point: pt})
	case gpucontext.PointerMove:
		if !h.tracking || ev.PointerID != h.pointerID {
			return false
		}
		return h.Handle(p, canvas, Event{Phase: PhaseChange, Point: pt})
	case gpucontext.PointerUp, gpucontext.PointerCancel:
		if !h.tracking || ev.PointerID != h.pointerID {
			return false
		}
		h.tracking = false
		return h.Handle(p, canvas, Event{Phase: PhaseEnd, Point: pt})
	default:
		return false
	}
}
