package floor

import "math"

// InversionThreshold is the line width above which a width describes the
// gap between lines rather than the line itself.
const InversionThreshold = 0.5

// GridLine returns the anti-aliased occupancy, in [0, 1], of a repeating
// line pattern with one line per unit cell on each axis.
//
// coord is the surface coordinate in cell units, lineWidth the line width
// per axis as a fraction of the cell, and deriv the per-pixel rate of change
// of coord on each axis. The two axis responses are combined as
// mix(x, 1, y): wherever the y-axis line is present it wins, elsewhere the
// x-axis line shows through. The combination is intentionally asymmetric.
//
// GridLine is pure and safe for concurrent use.
func GridLine(coord, lineWidth, deriv Vec2) float64 {
	x := lineResponse(coord.X, lineWidth.X, deriv.X)
	y := lineResponse(coord.Y, lineWidth.Y, deriv.Y)
	return clamp01(mix(x, 1, y))
}

// lineResponse evaluates one axis of the pattern.
func lineResponse(coord, width, deriv float64) float64 {
	invert := width > InversionThreshold
	target := width
	if invert {
		target = 1 - width
	}

	// Never thinner than one sample, never wider than half a cell.
	draw := glslClamp(target, deriv, 0.5)
	aa := deriv * 1.5

	// 0 on the cell boundary, 1 at the cell center (flipped when inverted).
	g := math.Abs(fract(coord)*2 - 1)
	if !invert {
		g = 1 - g
	}

	var edge float64
	if aa > 0 {
		edge = smoothstep(draw+aa, draw-aa, g)
	} else {
		edge = hardEdge(draw, g)
	}

	// Fade lines that were widened to one sample back toward their
	// requested weight.
	if draw > 0 {
		edge *= glslClamp(target/draw, 0, 1)
	} else {
		edge = 0
	}

	// Collapse to the average tone once a cell is smaller than a sample.
	edge = mix(edge, target, glslClamp(deriv*2-1, 0, 1))

	if invert {
		edge = 1 - edge
	}
	return edge
}

// hardEdge is the limit of smoothstep(w+aa, w-aa, g) as aa approaches 0.
func hardEdge(w, g float64) float64 {
	switch {
	case g < w:
		return 1
	case g > w:
		return 0
	default:
		return 0.5
	}
}

// smoothstep is GLSL smoothstep. Edges may be given in descending order,
// which yields a decreasing response. e0 must differ from e1.
func smoothstep(e0, e1, x float64) float64 {
	t := glslClamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// mix is GLSL mix: a*(1-t) + b*t.
func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// fract is GLSL fract: x - floor(x), always in [0, 1).
func fract(x float64) float64 {
	return x - math.Floor(x)
}

// glslClamp is GLSL clamp: min(max(x, lo), hi). When lo > hi the upper
// bound wins, which GridLine relies on for large derivatives.
func glslClamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// clamp01 restricts x to [0, 1]; NaN maps to 0.
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
