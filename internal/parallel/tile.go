// Package parallel provides tile-based parallel shading for the floor
// renderer.
//
// The image is divided into 64x64 pixel tiles. Each tile owns its pixel
// buffer, so a per-pixel kernel can shade all tiles concurrently without
// any locking; the results are copied into the destination image afterwards.
//
//   - 64x64 tiles keep one tile's RGBA data (16KB) in L1 cache
//   - Tile memory is reused via sync.Pool across frames and resizes
//   - A work-stealing WorkerPool balances tiles of uneven cost
//
// Thread safety: TileGrid is NOT thread-safe. Rasterizer serializes grid
// access and hands each tile to exactly one worker.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the total number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight

	// TileBytes is the size of a full tile in bytes (RGBA = 4 bytes per pixel).
	TileBytes = TilePixels * 4
)

// Tile is a rectangular region of the image shaded as one unit of work.
//
// Edge tiles may be smaller than TileWidth x TileHeight when the image is
// not evenly divisible by the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileWidth for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileHeight for edge tiles).
	Height int

	// Data contains the RGBA pixel data owned by this tile.
	// Length is Width * Height * 4 bytes.
	Data []byte
}

// Reset clears the tile data for reuse.
func (t *Tile) Reset() {
	clear(t.Data)
}

// Bounds returns the pixel bounds of this tile in image space.
// Returns (x, y, width, height) where x,y is the top-left corner.
func (t *Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// PixelOffset returns the byte offset into Data for the given pixel.
// Coordinates px, py are relative to the tile (0,0 is top-left of tile).
// Returns -1 if coordinates are out of bounds.
func (t *Tile) PixelOffset(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return (py*t.Width + px) * 4
}

// Stride returns the row stride in bytes.
func (t *Tile) Stride() int {
	return t.Width * 4
}
