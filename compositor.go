package floor

// Layer scale and width constants. A configured thickness is divided by the
// layer's divisor to obtain the line width as a fraction of that layer's
// cell. The axis layer repeats twice per unit of surface coordinate, so its
// lines fall on 0, 0.5 and 1.
const (
	MinorThicknessDivisor = 100.0
	MajorThicknessDivisor = 100.0
	AxisThicknessDivisor  = 1000.0
	AxisScale             = 2.0
)

// Sample is one evaluation request: a surface coordinate and the per-pixel
// rate of change of that coordinate on each axis.
type Sample struct {
	Coord Vec2
	Deriv Vec2
}

// NewSample creates a Sample. Derivative components are made non-negative.
func NewSample(coord, deriv Vec2) Sample {
	return Sample{Coord: coord, Deriv: deriv.Abs()}
}

// Layers holds the occupancy of each grid layer for one sample.
type Layers struct {
	Minor float64
	Major float64
	Axis  float64
}

// EvaluateLayers computes the occupancy of the minor, major and axis layers.
// Each layer scales both the coordinate and its derivative by the layer's
// repeat count.
func EvaluateLayers(s Sample, cfg *Config) Layers {
	return Layers{
		Minor: evaluateLayer(s, cfg.MinorGridSize, cfg.MinorGridlineThickness/MinorThicknessDivisor),
		Major: evaluateLayer(s, cfg.MajorGridSize, cfg.MajorGridlineThickness/MajorThicknessDivisor),
		Axis:  evaluateLayer(s, AxisScale, cfg.AxisThickness/AxisThicknessDivisor),
	}
}

func evaluateLayer(s Sample, scale, width float64) float64 {
	return GridLine(s.Coord.Mul(scale), Splat(width), s.Deriv.Mul(scale))
}

// Blend composites layer occupancies over the light color. Layers are
// applied minor, major, axis, so later layers win where they overlap.
func (l Layers) Blend(cfg *Config) RGB {
	c := cfg.LightColor
	c = c.Lerp(cfg.MinorGridColor, l.Minor)
	c = c.Lerp(cfg.MajorGridColor, l.Major)
	c = c.Lerp(cfg.AxisGridColor, l.Axis)
	return c
}

// Composite returns the linear floor color for one sample.
// It is pure; cfg is only read.
func Composite(s Sample, cfg *Config) RGB {
	return EvaluateLayers(s, cfg).Blend(cfg)
}
