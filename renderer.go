package floor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	icolor "github.com/gogpu/floor/internal/color"
	"github.com/gogpu/floor/internal/parallel"
)

// ErrInvalidSize is returned by Render for non-positive image dimensions.
var ErrInvalidSize = errors.New("floor: invalid image size")

// Renderer evaluates the floor for every pixel of an image on the CPU.
//
// The image is split into 64x64 tiles that are shaded concurrently. Each
// pixel is sampled at its center, (px+0.5, py+0.5), through a SurfaceMap.
//
// Thread safety: Renderer is safe for concurrent use; concurrent Render
// calls are serialized.
type Renderer struct {
	mu     sync.Mutex
	opts   rendererOptions
	raster *parallel.Rasterizer
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:   o,
		raster: parallel.NewRasterizer(0, 0, o.workers),
	}
}

// Workers returns the number of goroutines shading tiles.
func (r *Renderer) Workers() int {
	return r.raster.Workers()
}

// Render evaluates cfg over a w x h image mapped by m.
//
// cfg is read for the whole frame and must not change while Render runs;
// pass a Store snapshot to render while the configuration is being edited.
// Cancellation of ctx is checked before each tile starts; a canceled render
// returns the context error and no pixmap.
func (r *Renderer) Render(ctx context.Context, cfg *Config, m SurfaceMap, w, h int) (*Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pm := NewPixmap(w, h)
	r.raster.Resize(w, h)

	encode := icolor.EncodeSRGB8
	if r.opts.linearOutput {
		encode = icolor.Quantize
	}

	shade := func(t *parallel.Tile) {
		x0, y0, _, _ := t.Bounds()
		for py := range t.Height {
			fy := float64(y0+py) + 0.5
			for px := range t.Width {
				c := Composite(SampleAt(m, float64(x0+px)+0.5, fy), cfg)
				off := t.PixelOffset(px, py)
				t.Data[off+0] = encode(c.R)
				t.Data[off+1] = encode(c.G)
				t.Data[off+2] = encode(c.B)
				t.Data[off+3] = 0xff
			}
		}
	}

	if err := r.raster.Shade(ctx, pm.data, pm.Stride(), shade); err != nil {
		return nil, fmt.Errorf("floor: render: %w", err)
	}

	Logger().Debug("floor: frame rendered",
		"width", w, "height", h, "tiles", r.raster.TileCount())
	return pm, nil
}

// Close releases the worker goroutines. The renderer must not be used
// afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raster.Close()
}
