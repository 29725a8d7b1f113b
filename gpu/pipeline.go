//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/shader"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoBackground is returned when drawing before SetBackground was called.
var ErrNoBackground = errors.New("gpu: no background texture set")

// ErrDestroyed is returned by operations on a destroyed pipeline.
var ErrDestroyed = errors.New("gpu: pipeline destroyed")

// Option configures a Pipeline during creation.
type Option func(*options)

type options struct {
	label  string
	source shader.ModuleSource
	clear  glass.RGBA
}

func defaultOptions() options {
	return options{
		label:  "liquid_glass",
		source: shader.SourceWGSL,
		clear:  glass.RGBA{A: 1},
	}
}

// WithLabel sets the prefix of every GPU object label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithSPIRV makes the pipeline compile the kernel with naga and hand SPIR-V
// to the backend instead of WGSL text.
func WithSPIRV() Option {
	return func(o *options) {
		o.source = shader.SourceSPIRV
	}
}

// WithClearColor sets the color Render clears the target to before drawing.
func WithClearColor(c glass.RGBA) Option {
	return func(o *options) {
		o.clear = c
	}
}

// Pipeline draws the liquid glass effect with a single full-screen
// triangle. It owns the shader module, the bind group layout, the uniform
// buffer and the background texture.
//
// The pipeline is created eagerly; the bind group is built once a
// background has been set. A Pipeline is not safe for concurrent use.
type Pipeline struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	opts   options

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	uniformBuf hal.Buffer

	bgTex  hal.Texture
	bgView hal.TextureView
	bgW    uint32
	bgH    uint32

	bindGroup hal.BindGroup
	staging   []byte
	destroyed bool
}

// NewPipeline compiles the kernel and creates the render pipeline for
// color targets of the given format.
func NewPipeline(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, opts ...Option) (*Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Pipeline{
		device:  device,
		queue:   queue,
		format:  format,
		opts:    o,
		staging: make([]byte, shader.UniformSize),
	}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	glass.Logger().Info("gpu: liquid glass pipeline created", "format", format, "label", o.label)
	return p, nil
}

func (p *Pipeline) label(suffix string) string {
	return p.opts.label + "_" + suffix
}

// createPipeline creates the shader module, layouts, sampler, uniform
// buffer and the render pipeline with premultiplied alpha blending.
func (p *Pipeline) createPipeline() error {
	if err := shader.CheckSchema(); err != nil {
		var drift *shader.SchemaError
		if errors.As(err, &drift) {
			return fmt.Errorf("liquid glass shader out of sync with uniforms: %w", err)
		}
		glass.Logger().Warn("gpu: shader reflection unavailable", "err", err)
	}

	mod, err := shader.CreateModule(p.device, p.label("shader"), p.opts.source)
	if err != nil {
		return fmt.Errorf("compile liquid glass shader: %w", err)
	}
	p.shader = mod

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.label("bind_layout"),
		Entries: shader.BindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.label("pipe_layout"),
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        p.label("sampler"),
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	p.sampler = sampler

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.label("uniforms"),
		Size:  shader.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.label("pipeline"),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: shader.VertexEntry,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: shader.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// SetBackground uploads img as the background the glass refracts. The
// texture is recreated when the image size changes.
func (p *Pipeline) SetBackground(img *image.RGBA) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if img == nil {
		return fmt.Errorf("gpu: nil background image")
	}
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // image dimensions are non-negative
	if w == 0 || h == 0 {
		return fmt.Errorf("gpu: empty background image %dx%d", w, h)
	}
	if err := p.ensureBackground(w, h); err != nil {
		return err
	}

	// Tightly packed rows for the upload.
	data := img.Pix
	stride := int(w) * 4
	if img.Stride != stride || b.Min != (image.Point{}) {
		data = make([]byte, stride*int(h))
		for y := 0; y < int(h); y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(data[y*stride:(y+1)*stride], img.Pix[off:off+stride])
		}
	}

	err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: p.bgTex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("upload background: %w", err)
	}
	glass.Logger().Debug("gpu: background uploaded", "width", w, "height", h)
	return nil
}

// ensureBackground creates or recreates the background texture, its view
// and the bind group for the requested size.
func (p *Pipeline) ensureBackground(w, h uint32) error {
	if p.bgTex != nil && p.bgW == w && p.bgH == h {
		return nil
	}
	p.destroyBackground()

	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         p.label("background"),
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create background texture: %w", err)
	}
	p.bgTex = tex

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         p.label("background_view"),
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.destroyBackground()
		return fmt.Errorf("create background view: %w", err)
	}
	p.bgView = view

	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  p.label("bind_group"),
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: shader.UniformBinding, Resource: gputypes.BufferBinding{
				Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: shader.UniformSize,
			}},
			{Binding: shader.BackgroundBinding, Resource: gputypes.TextureViewBinding{
				TextureView: p.bgView.NativeHandle(),
			}},
			{Binding: shader.SamplerBinding, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		p.destroyBackground()
		return fmt.Errorf("create bind group: %w", err)
	}
	p.bindGroup = group
	p.bgW, p.bgH = w, h
	return nil
}

// BackgroundSize returns the size of the current background texture.
func (p *Pipeline) BackgroundSize() (uint32, uint32) {
	return p.bgW, p.bgH
}

// Update packs u and uploads it to the uniform buffer.
func (p *Pipeline) Update(u glass.Uniforms) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if err := shader.PackInto(p.staging, u); err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(p.uniformBuf, 0, p.staging); err != nil {
		return fmt.Errorf("upload uniforms: %w", err)
	}
	return nil
}

// UniformBuffer returns the buffer holding the packed uniforms.
func (p *Pipeline) UniformBuffer() hal.Buffer {
	return p.uniformBuf
}

// RecordDraw records the full-screen draw into a render pass owned by the
// caller.
func (p *Pipeline) RecordDraw(rp hal.RenderPassEncoder) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if p.bindGroup == nil {
		return ErrNoBackground
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	return nil
}

// Render clears target and draws one frame into it, then waits for the
// device to go idle.
func (p *Pipeline) Render(target hal.TextureView) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if p.bindGroup == nil {
		return ErrNoBackground
	}

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: p.label("encoder"),
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(p.label("frame")); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: p.label("pass"),
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: p.opts.clear.GPU(),
			},
		},
	})
	if err := p.RecordDraw(rp); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	if _, err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := p.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}

// destroyBackground releases the bind group and the background texture.
func (p *Pipeline) destroyBackground() {
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.bgView != nil {
		p.device.DestroyTextureView(p.bgView)
		p.bgView = nil
	}
	if p.bgTex != nil {
		p.device.DestroyTexture(p.bgTex)
		p.bgTex = nil
	}
	p.bgW, p.bgH = 0, 0
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times.
func (p *Pipeline) Destroy() {
	if p.device == nil || p.destroyed {
		return
	}
	p.destroyBackground()
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.destroyed = true
}
