package floor

import (
	"errors"
	"fmt"

	icolor "github.com/gogpu/floor/internal/color"
)

// ErrInvalidHex is returned by ParseHex for strings that are not hex colors.
var ErrInvalidHex = errors.New("floor: invalid hex color")

// RGB is an opaque color with components in [0, 1].
//
// Config colors are linear. RGB values read back from a Pixmap are
// whatever the renderer wrote (sRGB-encoded by default).
type RGB struct {
	R, G, B float64
}

// RGBA implements color.Color. Components are taken as display values;
// alpha is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(icolor.Quantize(c.R)) * 0x101
	g = uint32(icolor.Quantize(c.G)) * 0x101
	b = uint32(icolor.Quantize(c.B)) * 0x101
	return r, g, b, 0xffff
}

// Lerp performs linear interpolation between two colors.
// t = 0 returns c and t = 1 returns other, both exactly.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: mix(c.R, other.R, t),
		G: mix(c.G, other.G, t),
		B: mix(c.B, other.B, t),
	}
}

// ToLinear decodes sRGB-encoded components to linear.
func (c RGB) ToLinear() RGB {
	return RGB{
		R: icolor.SRGBToLinear(c.R),
		G: icolor.SRGBToLinear(c.G),
		B: icolor.SRGBToLinear(c.B),
	}
}

// ToSRGB encodes linear components to sRGB.
func (c RGB) ToSRGB() RGB {
	return RGB{
		R: icolor.LinearToSRGB(c.R),
		G: icolor.LinearToSRGB(c.G),
		B: icolor.LinearToSRGB(c.B),
	}
}

// Hex formats the color as "#rrggbb", quantizing each component.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		icolor.Quantize(c.R), icolor.Quantize(c.G), icolor.Quantize(c.B))
}

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. Alpha digits are accepted and ignored. The result holds the
// components exactly as written (sRGB-encoded for typical UI input).
func ParseHex(hex string) (RGB, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(s) {
	case 3, 4: // RGB, RGBA
		r, ok = parseHex(s[0:1])
		if ok {
			g, ok = parseHex(s[1:2])
		}
		if ok {
			b, ok = parseHex(s[2:3])
		}
		if ok && len(s) == 4 {
			_, ok = parseHex(s[3:4])
		}
		r, g, b = r*17, g*17, b*17
	case 6, 8: // RRGGBB, RRGGBBAA
		r, ok = parseHex(s[0:2])
		if ok {
			g, ok = parseHex(s[2:4])
		}
		if ok {
			b, ok = parseHex(s[4:6])
		}
		if ok && len(s) == 8 {
			_, ok = parseHex(s[6:8])
		}
	}
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level defaults.
func MustParseHex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex decodes a run of hex digits.
func parseHex(s string) (uint32, bool) {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}
