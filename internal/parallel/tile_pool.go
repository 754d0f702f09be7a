package parallel

import "sync"

// TilePool reuses Tile buffers across frames and resizes.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// pools holds one sync.Pool per edge-tile size.
	// Key format: (width << 16) | height
	pools sync.Map

	// fullTilePool serves the common 64x64 case without a map lookup.
	fullTilePool sync.Pool
}

// NewTilePool creates a new tile pool.
func NewTilePool() *TilePool {
	p := &TilePool{}
	p.fullTilePool.New = func() any {
		return &Tile{
			Width:  TileWidth,
			Height: TileHeight,
			Data:   make([]byte, TileBytes),
		}
	}
	return p
}

// Get returns a zeroed tile of the given dimensions.
// Returns nil for non-positive dimensions.
func (p *TilePool) Get(width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}

	var tile *Tile
	if width == TileWidth && height == TileHeight {
		tile = p.fullTilePool.Get().(*Tile)
	} else {
		tile = p.sizedPool(width, height).Get().(*Tile)
	}
	tile.Reset()
	tile.X = 0
	tile.Y = 0
	return tile
}

// Put returns a tile to the pool. Nil tiles are ignored.
func (p *TilePool) Put(tile *Tile) {
	if tile == nil {
		return
	}
	if tile.Width == TileWidth && tile.Height == TileHeight {
		p.fullTilePool.Put(tile)
		return
	}
	if pool, ok := p.pools.Load(poolKey(tile.Width, tile.Height)); ok {
		pool.(*sync.Pool).Put(tile)
	}
}

// poolKey creates a unique key for a tile size.
// Width and height are clamped to 16-bit values to prevent overflow.
func poolKey(width, height int) uint32 {
	w := min(width, 0xFFFF)
	h := min(height, 0xFFFF)
	return uint32(w)<<16 | uint32(h) //nolint:gosec // values are clamped above
}

// sizedPool gets or creates the sync.Pool for edge tiles of one size.
func (p *TilePool) sizedPool(width, height int) *sync.Pool {
	key := poolKey(width, height)
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return &Tile{
				Width:  width,
				Height: height,
				Data:   make([]byte, width*height*4),
			}
		},
	}

	// Another goroutine may have stored one first; use theirs.
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
