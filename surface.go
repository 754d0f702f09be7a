package floor

// SurfaceMap maps a pixel position to a surface coordinate. Pixel centers
// are at half-integer positions.
type SurfaceMap interface {
	Coord(px, py float64) Vec2
}

// Differentiable is implemented by maps that know their per-pixel
// derivative analytically.
type Differentiable interface {
	Deriv(px, py float64) Vec2
}

// MapFunc adapts a function to SurfaceMap. Its derivative is estimated
// with FiniteDifference.
type MapFunc func(px, py float64) Vec2

// Coord calls f(px, py).
func (f MapFunc) Coord(px, py float64) Vec2 { return f(px, py) }

// DerivFromDifferentials reduces the change of the coordinate across one
// pixel step in x (ddx) and in y (ddy) to a per-axis derivative magnitude:
// (|(ddx.X, ddy.X)|, |(ddx.Y, ddy.Y)|).
func DerivFromDifferentials(ddx, ddy Vec2) Vec2 {
	return Vec2{
		X: V2(ddx.X, ddy.X).Length(),
		Y: V2(ddx.Y, ddy.Y).Length(),
	}
}

// FiniteDifference estimates the derivative of m at (px, py) from forward
// differences of one pixel.
func FiniteDifference(m SurfaceMap, px, py float64) Vec2 {
	c := m.Coord(px, py)
	ddx := m.Coord(px+1, py).Sub(c)
	ddy := m.Coord(px, py+1).Sub(c)
	return DerivFromDifferentials(ddx, ddy)
}

// SampleAt builds the Sample for pixel position (px, py), using the
// analytic derivative when m provides one.
func SampleAt(m SurfaceMap, px, py float64) Sample {
	coord := m.Coord(px, py)
	if d, ok := m.(Differentiable); ok {
		return NewSample(coord, d.Deriv(px, py))
	}
	return NewSample(coord, FiniteDifference(m, px, py))
}

// AffineMap is a SurfaceMap given by a pixel-to-surface matrix. Its
// derivative is the same at every pixel.
type AffineMap struct {
	M Matrix
}

// Coord implements SurfaceMap.
func (a AffineMap) Coord(px, py float64) Vec2 {
	return a.M.TransformPoint(V2(px, py))
}

// Deriv implements Differentiable.
func (a AffineMap) Deriv(_, _ float64) Vec2 {
	return a.BaseDeriv()
}

// BaseDeriv returns the constant per-pixel derivative of the map.
func (a AffineMap) BaseDeriv() Vec2 {
	return DerivFromDifferentials(a.M.TransformVector(V2(1, 0)), a.M.TransformVector(V2(0, 1)))
}

// View describes a top-down camera over the floor in world units.
// World +Y points up the image. The world origin lies at surface
// coordinate (0.5, 0.5), so the axis layer draws the world axes through it.
type View struct {
	// CenterX and CenterY are the world position shown at the image center.
	CenterX, CenterY float64

	// PixelsPerUnit is the zoom. Values <= 0 are treated as 1.
	PixelsPerUnit float64

	// Rotation turns the floor under the camera, in radians.
	Rotation float64
}

// Map returns the pixel-to-surface map for an image of w x h pixels over a
// floor of cfg.FloorSize world units.
func (v View) Map(cfg *Config, w, h int) AffineMap {
	fs := cfg.FloorSize
	if fs <= 0 {
		fs = 1
	}
	worldToSurface := Translate(0.5, 0.5).Multiply(Scale(1/fs, 1/fs))
	return AffineMap{M: worldToSurface.Multiply(v.pixelToWorld(w, h))}
}

// World returns the world position shown at pixel position (px, py).
func (v View) World(px, py float64, w, h int) Vec2 {
	return v.pixelToWorld(w, h).TransformPoint(V2(px, py))
}

// Pixel returns the pixel position at which the world point p appears.
func (v View) Pixel(p Vec2, w, h int) Vec2 {
	return v.pixelToWorld(w, h).Invert().TransformPoint(p)
}

// ZoomAt scales the zoom by factor while keeping the world point under
// pixel (px, py) in place.
func (v View) ZoomAt(factor, px, py float64, w, h int) View {
	anchor := v.World(px, py, w, h)
	z := v
	z.PixelsPerUnit = v.zoom() * factor
	drift := z.World(px, py, w, h).Sub(anchor)
	z.CenterX -= drift.X
	z.CenterY -= drift.Y
	return z
}

func (v View) zoom() float64 {
	if v.PixelsPerUnit <= 0 {
		return 1
	}
	return v.PixelsPerUnit
}

func (v View) pixelToWorld(w, h int) Matrix {
	ppu := v.zoom()
	return Translate(v.CenterX, v.CenterY).
		Multiply(Rotate(v.Rotation)).
		Multiply(Scale(1/ppu, -1/ppu)).
		Multiply(Translate(-float64(w)/2, -float64(h)/2))
}
