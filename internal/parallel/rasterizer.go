package parallel

import (
	"context"
	"sync"
)

// Rasterizer shades an image tile by tile on a WorkerPool.
//
// Thread safety: Rasterizer methods may be called from multiple goroutines;
// frames are serialized internally because tiles are reused between frames.
type Rasterizer struct {
	mu   sync.Mutex
	grid *TileGrid
	pool *WorkerPool
}

// NewRasterizer creates a rasterizer for an image of the given dimensions.
// If workers <= 0, GOMAXPROCS is used.
func NewRasterizer(width, height, workers int) *Rasterizer {
	return &Rasterizer{
		grid: NewTileGrid(width, height),
		pool: NewWorkerPool(workers),
	}
}

// Size returns the image dimensions.
func (r *Rasterizer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grid.Width(), r.grid.Height()
}

// TileCount returns the total number of tiles.
func (r *Rasterizer) TileCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grid.TileCount()
}

// Workers returns the number of workers shading tiles.
func (r *Rasterizer) Workers() int {
	return r.pool.Workers()
}

// Resize changes the image dimensions, reallocating tiles as needed.
func (r *Rasterizer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grid.Resize(width, height)
}

// Shade calls fn for every tile in parallel and then copies the tiles into
// dst, which holds rows of stride bytes. fn must only write its own tile's
// Data.
//
// Tiles that have not started when ctx is done are skipped and Shade
// returns ctx.Err(); dst is left untouched in that case.
func (r *Rasterizer) Shade(ctx context.Context, dst []byte, stride int, fn func(t *Tile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tiles := r.grid.AllTiles()
	if len(tiles) == 0 || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() {
			if ctx.Err() != nil {
				return
			}
			fn(tile)
		}
	}
	r.pool.ExecuteAll(work)

	if err := ctx.Err(); err != nil {
		return err
	}

	for i, tile := range tiles {
		work[i] = func() {
			r.compositeTile(tile, dst, stride)
		}
	}
	r.pool.ExecuteAll(work)
	return nil
}

// compositeTile copies a single tile's data into the destination buffer.
func (r *Rasterizer) compositeTile(t *Tile, dst []byte, dstStride int) {
	tileX, tileY, _, _ := t.Bounds()
	srcStride := t.Stride()

	for row := 0; row < t.Height; row++ {
		dstOffset := (tileY+row)*dstStride + tileX*4
		if dstOffset+srcStride > len(dst) {
			return
		}
		copy(dst[dstOffset:dstOffset+srcStride], t.Data[row*srcStride:(row+1)*srcStride])
	}
}

// Close releases all resources.
// The rasterizer should not be used after Close is called.
func (r *Rasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool.Close()
	r.grid.Close()
}
