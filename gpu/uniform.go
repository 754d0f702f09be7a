//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/floor"
)

// UniformSize is the byte size of the floor uniform block.
// Layout (all f32, 16-byte aligned rows):
//
//	row0        vec4  offset   0  A, B, C, 0
//	row1        vec4  offset  16  D, E, F, 0
//	deriv       vec2  offset  32
//	encode_srgb f32   offset  40
//	_pad0       f32   offset  44
//	sizes       vec4  offset  48  minor, major, axis repeat, 0
//	widths      vec4  offset  64  minor, major, axis width, 0
//	minor_color vec4  offset  80
//	major_color vec4  offset  96
//	axis_color  vec4  offset 112
//	light_color vec4  offset 128
const UniformSize = 144

// makeFloorUniform packs cfg and the pixel map into the uniform block.
// Widths are divided by the layer divisors here so the shader sees the same
// numbers as floor.EvaluateLayers.
func makeFloorUniform(cfg *floor.Config, m floor.AffineMap, encodeSRGB bool) []byte {
	buf := make([]byte, UniformSize)
	put := func(off int, v float64) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(float32(v)))
	}
	putColor := func(off int, c floor.RGB) {
		put(off, c.R)
		put(off+4, c.G)
		put(off+8, c.B)
		put(off+12, 1)
	}

	put(0, m.M.A)
	put(4, m.M.B)
	put(8, m.M.C)
	put(16, m.M.D)
	put(20, m.M.E)
	put(24, m.M.F)

	d := m.BaseDeriv()
	put(32, d.X)
	put(36, d.Y)
	if encodeSRGB {
		put(40, 1)
	}

	put(48, cfg.MinorGridSize)
	put(52, cfg.MajorGridSize)
	put(56, floor.AxisScale)

	put(64, cfg.MinorGridlineThickness/floor.MinorThicknessDivisor)
	put(68, cfg.MajorGridlineThickness/floor.MajorThicknessDivisor)
	put(72, cfg.AxisThickness/floor.AxisThicknessDivisor)

	putColor(80, cfg.MinorGridColor)
	putColor(96, cfg.MajorGridColor)
	putColor(112, cfg.AxisGridColor)
	putColor(128, cfg.LightColor)
	return buf
}
