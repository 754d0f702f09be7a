package hclconfig

import (
	"fmt"
	"math"

	"github.com/gogpu/floor"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// evalContext exposes the defaults and the rgb helper to expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": defaultsValue(floor.DefaultParams()),
		},
		Functions: map[string]function.Function{
			"rgb": rgbFunc,
		},
	}
}

// defaultsValue converts tunables into the cty object bound to "defaults".
func defaultsValue(p floor.Params) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"floor_size":               cty.NumberFloatVal(p.FloorSize),
		"minor_grid_size":          cty.NumberFloatVal(p.MinorGridSize),
		"major_grid_size":          cty.NumberFloatVal(p.MajorGridSize),
		"minor_gridline_thickness": cty.NumberFloatVal(p.MinorGridlineThickness),
		"major_gridline_thickness": cty.NumberFloatVal(p.MajorGridlineThickness),
		"axis_thickness":           cty.NumberFloatVal(p.AxisThickness),
		"minor_grid_color":         cty.StringVal(p.MinorGridColor),
		"major_grid_color":         cty.StringVal(p.MajorGridColor),
		"axis_grid_color":          cty.StringVal(p.AxisGridColor),
		"light_color":              cty.StringVal(p.LightColor),
	})
}

// rgbFunc builds a "#rrggbb" string from three 0-255 components.
var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var c [3]int
		for i, arg := range args {
			v, _ := arg.AsBigFloat().Float64()
			if v < 0 || v > 255 || v != math.Trunc(v) {
				return cty.UnknownVal(cty.String), function.NewArgErrorf(i, "component must be an integer in [0, 255], got %v", v)
			}
			c[i] = int(v)
		}
		return cty.StringVal(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])), nil
	},
})
