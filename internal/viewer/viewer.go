// Package viewer holds the interactive state of the live floor viewer:
// camera, selected layer and the last rendered frame. It has no window
// dependency so the behavior can be tested headless.
package viewer

import (
	"context"
	"fmt"

	"github.com/gogpu/floor"
)

// Layer selects which thickness the viewer adjusts.
type Layer int

// Adjustable layers.
const (
	LayerMinor Layer = iota
	LayerMajor
	LayerAxis
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerMinor:
		return "minor"
	case LayerMajor:
		return "major"
	case LayerAxis:
		return "axis"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// Nudge sizes applied per key press. Bind clamps the result to Ranges.
const (
	ThicknessNudge = 0.05
	AxisNudge      = 0.02
)

// Controller turns viewer input into views and configuration updates and
// renders frames on demand.
type Controller struct {
	store    *floor.Store
	renderer *floor.Renderer

	view  floor.View
	layer Layer

	width, height int

	frame     *floor.Pixmap
	frameView floor.View
	frameGen  uint64
}

// New creates a controller over store that renders with r.
// w and h are the initial frame size.
func New(store *floor.Store, r *floor.Renderer, view floor.View, w, h int) *Controller {
	return &Controller{store: store, renderer: r, view: view, width: w, height: h}
}

// View returns the current camera.
func (c *Controller) View() floor.View { return c.view }

// Layer returns the layer that AdjustThickness changes.
func (c *Controller) Layer() Layer { return c.layer }

// Select chooses the layer that AdjustThickness changes. Unknown layers are
// ignored.
func (c *Controller) Select(l Layer) {
	if l < LayerMinor || l > LayerAxis {
		return
	}
	c.layer = l
}

// Pan moves the camera so the content shifts by (dx, dy) pixels.
func (c *Controller) Pan(dx, dy float64) {
	cx, cy := float64(c.width)/2, float64(c.height)/2
	center := c.view.World(cx-dx, cy-dy, c.width, c.height)
	c.view.CenterX = center.X
	c.view.CenterY = center.Y
}

// Zoom scales the zoom by factor around pixel (px, py).
func (c *Controller) Zoom(factor, px, py float64) {
	if factor <= 0 {
		return
	}
	c.view = c.view.ZoomAt(factor, px, py, c.width, c.height)
}

// AdjustThickness changes the thickness of the selected layer by steps
// nudges and publishes the result. It returns the new store generation.
func (c *Controller) AdjustThickness(steps int) uint64 {
	layer := c.layer
	return c.store.Update(func(p floor.Params) floor.Params {
		switch layer {
		case LayerMinor:
			p.MinorGridlineThickness = floor.Ranges.MinorGridlineThickness.Clamp(
				p.MinorGridlineThickness + float64(steps)*ThicknessNudge)
		case LayerMajor:
			p.MajorGridlineThickness = floor.Ranges.MajorGridlineThickness.Clamp(
				p.MajorGridlineThickness + float64(steps)*ThicknessNudge)
		case LayerAxis:
			p.AxisThickness = floor.Ranges.AxisThickness.Clamp(
				p.AxisThickness + float64(steps)*AxisNudge)
		}
		return p
	})
}

// Frame returns the frame for a w x h window. It renders only when the
// size, the camera or the store generation changed since the last frame;
// rendered reports whether it did.
func (c *Controller) Frame(ctx context.Context, w, h int) (pm *floor.Pixmap, rendered bool, err error) {
	c.width, c.height = w, h

	// Read before Load: a racing publication can only cause an extra render.
	gen := c.store.Generation()
	if c.frame != nil && gen == c.frameGen && c.view == c.frameView &&
		c.frame.Width() == w && c.frame.Height() == h {
		return c.frame, false, nil
	}

	cfg := c.store.Load()
	pm, err = c.renderer.Render(ctx, cfg, c.view.Map(cfg, w, h), w, h)
	if err != nil {
		return nil, false, err
	}
	c.frame, c.frameView, c.frameGen = pm, c.view, gen
	return pm, true, nil
}

// Status describes the camera, the selected layer and the world position
// under pixel (px, py).
func (c *Controller) Status(px, py float64) string {
	p := c.store.Params()
	thickness := map[Layer]float64{
		LayerMinor: p.MinorGridlineThickness,
		LayerMajor: p.MajorGridlineThickness,
		LayerAxis:  p.AxisThickness,
	}[c.layer]
	world := c.view.World(px, py, c.width, c.height)
	return fmt.Sprintf("zoom %.3g px/unit  cursor (%.2f, %.2f)\n%s thickness %.3f  gen %d",
		c.view.PixelsPerUnit, world.X, world.Y, c.layer, thickness, c.store.Generation())
}
