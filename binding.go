package floor

import (
	"log/slog"
	"math"
)

// Bind validates tunables and converts them into a Config.
//
// Bind never fails. Numeric values are clamped to Ranges and non-finite
// values fall back to the default. Colors are parsed as sRGB hex and
// converted to linear; malformed colors fall back to the default color.
// Each correction is logged at Warn level.
func Bind(p Params) *Config {
	return bind(p, Logger())
}

func bind(p Params, log *slog.Logger) *Config {
	d := DefaultParams()
	b := binder{log: log}
	return &Config{
		FloorSize:              b.number("floor_size", p.FloorSize, d.FloorSize, Ranges.FloorSize),
		MinorGridSize:          b.number("minor_grid_size", p.MinorGridSize, d.MinorGridSize, Ranges.MinorGridSize),
		MajorGridSize:          b.number("major_grid_size", p.MajorGridSize, d.MajorGridSize, Ranges.MajorGridSize),
		MinorGridlineThickness: b.number("minor_gridline_thickness", p.MinorGridlineThickness, d.MinorGridlineThickness, Ranges.MinorGridlineThickness),
		MajorGridlineThickness: b.number("major_gridline_thickness", p.MajorGridlineThickness, d.MajorGridlineThickness, Ranges.MajorGridlineThickness),
		AxisThickness:          b.number("axis_thickness", p.AxisThickness, d.AxisThickness, Ranges.AxisThickness),
		MinorGridColor:         b.color("minor_grid_color", p.MinorGridColor, d.MinorGridColor),
		MajorGridColor:         b.color("major_grid_color", p.MajorGridColor, d.MajorGridColor),
		AxisGridColor:          b.color("axis_grid_color", p.AxisGridColor, d.AxisGridColor),
		LightColor:             b.color("light_color", p.LightColor, d.LightColor),
	}
}

// binder applies corrections and reports them. A nil log is silent; the
// package defaults are bound before the logger exists.
type binder struct {
	log *slog.Logger
}

func (b binder) number(name string, v, def float64, r Range) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.warn("non-finite value replaced by default", name, v, def)
		return def
	}
	c := r.Clamp(v)
	if c != v {
		b.warn("value clamped to range", name, v, c)
	}
	return c
}

func (b binder) color(name, hex, def string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		b.warn("malformed color replaced by default", name, hex, def)
		c = MustParseHex(def)
	}
	return c.ToLinear()
}

func (b binder) warn(msg, name string, got, used any) {
	if b.log == nil {
		return
	}
	b.log.Warn("floor: "+msg, "param", name, "got", got, "used", used)
}
