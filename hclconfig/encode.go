package hclconfig

import (
	"github.com/gogpu/floor"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Encode writes p as an HCL document that Parse reads back unchanged.
func Encode(p floor.Params) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	sizes := root.AppendNewBlock("sizes", nil).Body()
	sizes.SetAttributeValue("floor", cty.NumberFloatVal(p.FloorSize))
	sizes.SetAttributeValue("minor", cty.NumberFloatVal(p.MinorGridSize))
	sizes.SetAttributeValue("major", cty.NumberFloatVal(p.MajorGridSize))
	root.AppendNewline()

	thickness := root.AppendNewBlock("thickness", nil).Body()
	thickness.SetAttributeValue("minor", cty.NumberFloatVal(p.MinorGridlineThickness))
	thickness.SetAttributeValue("major", cty.NumberFloatVal(p.MajorGridlineThickness))
	thickness.SetAttributeValue("axis", cty.NumberFloatVal(p.AxisThickness))
	root.AppendNewline()

	colors := root.AppendNewBlock("colors", nil).Body()
	colors.SetAttributeValue("minor", cty.StringVal(p.MinorGridColor))
	colors.SetAttributeValue("major", cty.StringVal(p.MajorGridColor))
	colors.SetAttributeValue("axis", cty.StringVal(p.AxisGridColor))
	root.AppendNewline()

	light := root.AppendNewBlock("light", nil).Body()
	light.SetAttributeValue("color", cty.StringVal(p.LightColor))

	return f.Bytes()
}
