// Package floor renders a procedural reference floor: minor, major and axis
// grid lines synthesized per pixel, with no stored geometry or textures.
//
// # Overview
//
// The heart of the package is [GridLine], a pure function that returns the
// anti-aliased occupancy of a repeating line pattern at one surface
// coordinate, and [Composite], which evaluates three such patterns at
// different scales and blends them over a base color.
//
// # Quick Start
//
//	import "github.com/gogpu/floor"
//
//	cfg := floor.DefaultConfig()
//	view := floor.View{PixelsPerUnit: 8}
//
//	r := floor.NewRenderer()
//	defer r.Close()
//
//	pm, err := r.Render(ctx, cfg, view.Map(cfg, 800, 600), 800, 600)
//	if err != nil {
//		return err
//	}
//	_ = pm.SavePNG("floor.png")
//
// # Configuration
//
// A [Config] is an immutable snapshot. Tunables arrive as [Params] (numbers
// plus hex color strings) and are turned into a Config by [Bind], which
// clamps values to their declared [Ranges] instead of failing. A [Store]
// publishes snapshots atomically so that a frame never sees two
// configurations.
//
// # Derivatives
//
// Anti-aliasing needs the rate of change of the surface coordinate per
// screen pixel. It is always an explicit argument: [AffineMap] computes it
// analytically, any other [SurfaceMap] is differentiated with
// [FiniteDifference], and [DerivFromDifferentials] accepts the raw
// per-pixel differentials a host already has.
//
// # Coordinate System
//
// Pixel (0,0) is the top-left corner; samples are taken at pixel centers.
// Surface coordinates are unbounded and periodic in every layer.
package floor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
