// Package preview is a CPU reference renderer for the liquid glass kernel.
//
// It evaluates the same distance field and shading steps as the WGSL
// kernel, pixel by pixel, into an *image.RGBA. It is used for headless
// snapshots, golden tests and machines without a GPU adapter. Results are
// close to, not bit-identical with, the GPU output.
package preview
