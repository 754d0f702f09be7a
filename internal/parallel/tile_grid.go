package parallel

// TileGrid covers an image with tiles stored in row-major order
// (index = ty * tilesX + tx).
//
// Thread safety: TileGrid is NOT thread-safe.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
	pool   *TilePool
}

// NewTileGrid creates a tile grid for an image of the given dimensions.
// Non-positive dimensions produce an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{pool: NewTilePool()}
	g.Resize(width, height)
	return g
}

// allocateTiles creates all tiles for the grid.
func (g *TileGrid) allocateTiles() {
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)
	for ty := range g.tilesY {
		for tx := range g.tilesX {
			// Right and bottom edge tiles may be smaller.
			tileW := min(TileWidth, g.width-tx*TileWidth)
			tileH := min(TileHeight, g.height-ty*TileHeight)

			tile := g.pool.Get(tileW, tileH)
			tile.X = tx
			tile.Y = ty
			g.tiles[ty*g.tilesX+tx] = tile
		}
	}
}

// Resize changes the grid dimensions, reallocating tiles as needed.
// If dimensions haven't changed, this is a no-op.
func (g *TileGrid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		g.Close()
		g.tilesX, g.tilesY = 0, 0
		g.width, g.height = 0, 0
		return
	}
	if g.width == width && g.height == height && g.tiles != nil {
		return
	}

	g.Close()
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.width = width
	g.height = height
	g.allocateTiles()
}

// TileAt returns the tile at tile coordinates (tx, ty).
// Returns nil if coordinates are out of bounds.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return g.tiles[ty*g.tilesX+tx]
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the image width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the image height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// AllTiles returns all tiles in the grid.
// The returned slice should not be modified.
func (g *TileGrid) AllTiles() []*Tile {
	return g.tiles
}

// Close releases all tiles back to the pool. A later Resize to a new or
// the same size allocates fresh tiles.
func (g *TileGrid) Close() {
	for i, tile := range g.tiles {
		if tile != nil {
			g.pool.Put(tile)
			g.tiles[i] = nil
		}
	}
	g.tiles = nil
}
