// Package gpu draws the liquid glass effect on a WebGPU HAL device.
//
// A Pipeline owns the compiled kernel, its uniform buffer and the
// background texture. Each frame the caller encodes the scene and uploads
// it:
//
//	p, err := gpu.NewPipeline(device, queue, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer p.Destroy()
//	_ = p.SetBackground(img)
//	_ = p.Update(session.Uniforms())
//	_ = p.Render(surfaceView)
//
// Build with -tags nogpu to exclude the package contents.
package gpu
