//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/floor"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrEmptyShader is returned when the embedded shader source is missing.
var ErrEmptyShader = errors.New("gpu: floor shader source is empty")

// copyPitchAlignment is the BytesPerRow alignment WebGPU (and DX12)
// require for texture-to-buffer copies.
const copyPitchAlignment = 256

// fenceTimeout bounds the wait for one frame.
const fenceTimeout = 5 * time.Second

// Pipeline manages the GPU resources for drawing the floor into an
// offscreen BGRA8 texture and reading it back.
//
// The pipeline and texture are created lazily on the first Render and the
// texture is recreated when the target size changes. The kernel produces
// its own anti-aliasing, so no MSAA attachment is used.
//
// Thread safety: Pipeline is NOT thread-safe.
type Pipeline struct {
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	colorTex  hal.Texture
	colorView hal.TextureView

	width, height uint32

	linearOutput bool
}

// NewPipeline creates a floor pipeline on the given device and queue. No GPU
// objects are created until the first Render.
func NewPipeline(device hal.Device, queue hal.Queue) *Pipeline {
	return &Pipeline{
		device: device,
		queue:  queue,
	}
}

// SetLinearOutput selects linear instead of sRGB-encoded output values,
// matching floor.WithLinearOutput.
func (p *Pipeline) SetLinearOutput(linear bool) {
	p.linearOutput = linear
}

// Size returns the current texture dimensions.
func (p *Pipeline) Size() (uint32, uint32) {
	return p.width, p.height
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *Pipeline) Destroy() {
	p.destroyPipeline()
	p.destroyTextures()
}

// Render draws cfg through the pixel map m into target. The target is
// overwritten with opaque RGBA pixels.
func (p *Pipeline) Render(cfg *floor.Config, m floor.AffineMap, target *floor.Pixmap) error {
	if target.Width() <= 0 || target.Height() <= 0 {
		return fmt.Errorf("gpu: %w: %dx%d", floor.ErrInvalidSize, target.Width(), target.Height())
	}

	w, h := uint32(target.Width()), uint32(target.Height()) //nolint:gosec // dimensions checked positive above
	if err := p.ensureReady(w, h); err != nil {
		return err
	}

	uniformData := makeFloorUniform(cfg, m, !p.linearOutput)
	uniformBuf, err := p.createAndUploadBuffer("floor_uniform", uniformData,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	defer p.device.DestroyBuffer(uniformBuf)

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "floor_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(bindGroup)

	if err := p.encodeAndReadback(w, h, bindGroup, target); err != nil {
		return err
	}

	slogger().Debug("gpu: floor frame rendered", "width", w, "height", h)
	return nil
}

// ensureReady creates the texture and the pipeline if needed.
func (p *Pipeline) ensureReady(w, h uint32) error {
	if err := p.ensureTextures(w, h); err != nil {
		return fmt.Errorf("ensure textures: %w", err)
	}
	if p.pipeline == nil {
		if err := p.createPipeline(); err != nil {
			return fmt.Errorf("create pipeline: %w", err)
		}
	}
	return nil
}

// ensureTextures creates or recreates the color texture if the requested
// dimensions differ from the current size.
func (p *Pipeline) ensureTextures(w, h uint32) error {
	if p.width == w && p.height == h && p.colorTex != nil {
		return nil
	}
	p.destroyTextures()

	colorTex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "floor_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	p.colorTex = colorTex

	colorView, err := p.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label:         "floor_color_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.destroyTextures()
		return fmt.Errorf("create color view: %w", err)
	}
	p.colorView = colorView

	p.width = w
	p.height = h
	slogger().Debug("gpu: floor textures allocated", "width", w, "height", h)
	return nil
}

// destroyTextures releases the texture resources and resets dimensions.
func (p *Pipeline) destroyTextures() {
	if p.colorView != nil {
		p.device.DestroyTextureView(p.colorView)
		p.colorView = nil
	}
	if p.colorTex != nil {
		p.device.DestroyTexture(p.colorTex)
		p.colorTex = nil
	}
	p.width = 0
	p.height = 0
}

// createPipeline compiles the floor shader and creates the render pipeline.
// Output is opaque, so blending is disabled.
func (p *Pipeline) createPipeline() error {
	if floorShaderSource == "" {
		return ErrEmptyShader
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "floor_shader",
		Source: hal.ShaderSource{WGSL: floorShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile floor shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "floor_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "floor_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "floor_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
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

	slogger().Info("gpu: floor pipeline created")
	return nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *Pipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// encodeAndReadback encodes the floor pass, copies the color texture to a
// staging buffer, submits, waits and converts the pixels into target.
func (p *Pipeline) encodeAndReadback(w, h uint32, bindGroup hal.BindGroup, target *floor.Pixmap) error {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "floor_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("floor"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "floor_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       p.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	// The texture leaves the pass as a render attachment; the copy needs it
	// as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: p.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "floor_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer p.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(p.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: p.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := p.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := p.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	unpackRows(readback, target.Data(), int(w), int(h), int(alignedBytesPerRow))
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (p *Pipeline) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// unpackRows strips the per-row copy padding from BGRA readback data and
// stores the pixels as opaque RGBA.
func unpackRows(src, dst []byte, w, h, srcStride int) {
	for row := range h {
		s := src[row*srcStride : row*srcStride+w*4]
		d := dst[row*w*4 : (row+1)*w*4]
		convertBGRAToRGBA(s, d, w)
	}
}

// convertBGRAToRGBA swizzles pixelCount BGRA pixels into RGBA.
func convertBGRAToRGBA(src, dst []byte, pixelCount int) {
	for i := range pixelCount {
		o := i * 4
		dst[o+0] = src[o+2]
		dst[o+1] = src[o+1]
		dst[o+2] = src[o+0]
		dst[o+3] = 0xff
	}
}
