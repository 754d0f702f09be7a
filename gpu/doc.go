//go:build !nogpu

// Package gpu renders the floor grid on the GPU through wgpu/hal.
//
// The fragment shader evaluates the same anti-aliased line kernel as
// floor.Composite. A single full-screen triangle is drawn with no vertex
// buffer; the pixel-to-surface map and its constant derivative travel in a
// uniform block, so the shader does not depend on derivative built-ins.
//
// The caller owns the device:
//
//	p := gpu.NewPipeline(device, queue)
//	defer p.Destroy()
//
//	pm := floor.NewPixmap(1280, 720)
//	m := floor.View{PixelsPerUnit: 40}.Map(cfg, 1280, 720)
//	if err := p.Render(cfg, m, pm); err != nil {
//	    // fall back to floor.Renderer
//	}
//
// Build with -tags nogpu to exclude this package.
package gpu
