// Package hclconfig reads floor tunables from HCL documents.
//
// A document may contain any of four optional blocks, one per group of the
// tuning panel. Attributes that are absent keep their default value:
//
//	sizes {
//	  floor = 2000
//	  minor = 1000
//	  major = defaults.major_grid_size / 2
//	}
//
//	thickness {
//	  minor = 1.45
//	  major = 1
//	  axis  = 0.5
//	}
//
//	colors {
//	  minor = "#05bdb4"
//	  major = rgb(10, 167, 179)
//	  axis  = "#ffffff"
//	}
//
//	light {
//	  color = defaults.light_color
//	}
//
// Expressions can refer to the defaults through the "defaults" object and
// build hex colors with rgb(r, g, b). The result is raw floor.Params; range
// checks happen in floor.Bind.
package hclconfig

import (
	"fmt"

	"github.com/gogpu/floor"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// file is the top-level structure of a floor configuration document.
type file struct {
	Sizes     *sizesBlock     `hcl:"sizes,block"`
	Thickness *thicknessBlock `hcl:"thickness,block"`
	Colors    *colorsBlock    `hcl:"colors,block"`
	Light     *lightBlock     `hcl:"light,block"`
}

type sizesBlock struct {
	Floor *float64 `hcl:"floor,optional"`
	Minor *float64 `hcl:"minor,optional"`
	Major *float64 `hcl:"major,optional"`
}

type thicknessBlock struct {
	Minor *float64 `hcl:"minor,optional"`
	Major *float64 `hcl:"major,optional"`
	Axis  *float64 `hcl:"axis,optional"`
}

type colorsBlock struct {
	Minor *string `hcl:"minor,optional"`
	Major *string `hcl:"major,optional"`
	Axis  *string `hcl:"axis,optional"`
}

type lightBlock struct {
	Color *string `hcl:"color,optional"`
}

// Parse decodes an HCL document. filename is only used in diagnostics.
func Parse(src []byte, filename string) (floor.Params, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return floor.Params{}, fmt.Errorf("hclconfig: parse %s: %w", filename, diags)
	}
	return decode(f, filename)
}

// Load reads and decodes the HCL document at path.
func Load(path string) (floor.Params, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return floor.Params{}, fmt.Errorf("hclconfig: parse %s: %w", path, diags)
	}
	return decode(f, path)
}

func decode(f *hcl.File, filename string) (floor.Params, error) {
	var doc file
	diags := gohcl.DecodeBody(f.Body, evalContext(), &doc)
	if diags.HasErrors() {
		return floor.Params{}, fmt.Errorf("hclconfig: decode %s: %w", filename, diags)
	}

	p := floor.DefaultParams()
	if s := doc.Sizes; s != nil {
		setFloat(&p.FloorSize, s.Floor)
		setFloat(&p.MinorGridSize, s.Minor)
		setFloat(&p.MajorGridSize, s.Major)
	}
	if th := doc.Thickness; th != nil {
		setFloat(&p.MinorGridlineThickness, th.Minor)
		setFloat(&p.MajorGridlineThickness, th.Major)
		setFloat(&p.AxisThickness, th.Axis)
	}
	if c := doc.Colors; c != nil {
		setString(&p.MinorGridColor, c.Minor)
		setString(&p.MajorGridColor, c.Major)
		setString(&p.AxisGridColor, c.Axis)
	}
	if l := doc.Light; l != nil {
		setString(&p.LightColor, l.Color)
	}

	floor.Logger().Debug("hclconfig: decoded", "file", filename)
	return p, nil
}

func setFloat(dst, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}
