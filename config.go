package floor

// Config is the immutable input of the compositor. Colors are linear RGB.
//
// A Config must not be modified once it has been handed to a Renderer or
// published through a Store; build a new one instead. Fields are exported
// so hosts and tests can construct configurations outside the ranges that
// Bind enforces.
type Config struct {
	// FloorSize is the extent of the floor in world units. The surface
	// coordinate spans [0, 1] across it.
	FloorSize float64

	// MinorGridSize and MajorGridSize are repeat counts across the surface.
	MinorGridSize float64
	MajorGridSize float64

	// Thicknesses are divided by MinorThicknessDivisor,
	// MajorThicknessDivisor and AxisThicknessDivisor respectively.
	MinorGridlineThickness float64
	MajorGridlineThickness float64
	AxisThickness          float64

	MinorGridColor RGB
	MajorGridColor RGB
	AxisGridColor  RGB
	LightColor     RGB
}

// Params are the externally tunable values, as a parameter panel or a
// configuration file supplies them. Colors are hex strings in sRGB.
type Params struct {
	FloorSize              float64
	MinorGridSize          float64
	MajorGridSize          float64
	MinorGridlineThickness float64
	MajorGridlineThickness float64
	AxisThickness          float64
	MinorGridColor         string
	MajorGridColor         string
	AxisGridColor          string
	LightColor             string
}

// Range is the declared domain of a numeric tunable. Step is advisory: it
// tells a UI how to move a slider and is not enforced by Bind.
type Range struct {
	Min, Max, Step float64
}

// Clamp restricts v to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Ranges lists the declared domain of every numeric tunable.
var Ranges = struct {
	FloorSize              Range
	MinorGridSize          Range
	MajorGridSize          Range
	MinorGridlineThickness Range
	MajorGridlineThickness Range
	AxisThickness          Range
}{
	FloorSize:              Range{Min: 1, Max: 2000, Step: 1},
	MinorGridSize:          Range{Min: 1, Max: 4000, Step: 2},
	MajorGridSize:          Range{Min: 1, Max: 1000, Step: 2},
	MinorGridlineThickness: Range{Min: 0.5, Max: 5, Step: 0.001},
	MajorGridlineThickness: Range{Min: 0.5, Max: 5, Step: 0.001},
	AxisThickness:          Range{Min: 0.1, Max: 1, Step: 0.001},
}

// DefaultParams returns the default tunables.
func DefaultParams() Params {
	return Params{
		FloorSize:              2000,
		MinorGridSize:          1000,
		MajorGridSize:          100,
		MinorGridlineThickness: 1.45,
		MajorGridlineThickness: 1,
		AxisThickness:          0.5,
		MinorGridColor:         "#05bdb4",
		MajorGridColor:         "#0aa7b3ff",
		AxisGridColor:          "#ffffffff",
		LightColor:             "#e5e8e9",
	}
}

// defaultConfig is bound once; DefaultConfig hands out copies.
var defaultConfig = bind(DefaultParams(), nil)

// DefaultConfig returns a new Config holding the bound defaults.
func DefaultConfig() *Config {
	c := *defaultConfig
	return &c
}

// Params converts the configuration back into tunables. Colors are encoded
// to sRGB hex, so a round trip through Bind is exact for 8-bit colors.
func (c *Config) Params() Params {
	return Params{
		FloorSize:              c.FloorSize,
		MinorGridSize:          c.MinorGridSize,
		MajorGridSize:          c.MajorGridSize,
		MinorGridlineThickness: c.MinorGridlineThickness,
		MajorGridlineThickness: c.MajorGridlineThickness,
		AxisThickness:          c.AxisThickness,
		MinorGridColor:         c.MinorGridColor.ToSRGB().Hex(),
		MajorGridColor:         c.MajorGridColor.ToSRGB().Hex(),
		AxisGridColor:          c.AxisGridColor.ToSRGB().Hex(),
		LightColor:             c.LightColor.ToSRGB().Hex(),
	}
}
