// Package glass models the scene of a "liquid glass" SDF compositing effect
// and turns it into the uniform record consumed by the glass shader kernel.
//
// # Overview
//
// A scene holds exactly three SDF primitives (squircle, ellipse or rounded
// rectangle) plus a handful of global effect settings, each paired with an
// enable flag: glass tint, lighting, refraction, chromatic aberration,
// background blur and smooth-union blending.
//
// The package has three moving parts:
//   - [Parameters], the scene itself, mutated in place by the input and
//     settings layers.
//   - [HitTester], which picks the shape nearest to a pointer and drags it.
//   - [Encode], which flattens the scene into [Uniforms], the fixed positional
//     argument list declared by the kernel.
//
// [Session] ties them together for one rendering session.
//
// # Quick Start
//
//	s := glass.NewSession(glass.Sz(800, 600))
//
//	// Forward pointer input.
//	s.HandleEvent(glass.Event{Phase: glass.PhaseBegin, Point: glass.Pt(400, 300)})
//	s.HandleEvent(glass.Event{Phase: glass.PhaseChange, Point: glass.Pt(420, 310)})
//	s.HandleEvent(glass.Event{Phase: glass.PhaseEnd})
//
//	// Every redraw.
//	buf := shader.Pack(s.Uniforms())
//
// # Coordinate System
//
// Shape positions are normalized to the canvas: (0,0) is the top-left corner
// and (1,1) the bottom-right one. Sizes, corner radii and pointer locations
// are in canvas pixels.
//
// # Threading
//
// Nothing in this package locks. A scene is owned by one session and is
// touched only from the UI/render thread.
//
// # Sub-packages
//
//   - shader: the kernel's WGSL declaration, uniform layout and packing
//   - gpu: wgpu/hal render pipeline for the kernel
//   - preview: CPU reference compositor for previews and tests
package glass
